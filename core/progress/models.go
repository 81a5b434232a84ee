package progress

import "time"

// xpPerLevelStep: advancing from level n to n+1 costs n * xpPerLevelStep XP.
const xpPerLevelStep = 500

// Progress is a user's gamified learning state.
type Progress struct {
	UserID       string    `json:"user_id"`
	XP           int       `json:"xp"`
	Level        int       `json:"level"`
	Streak       int       `json:"streak"`
	LastActivity time.Time `json:"last_activity"` // UTC
	UpdatedAt    time.Time `json:"updated_at"`    // UTC
}

// LevelFor computes the level reached with the given total XP.
func LevelFor(xp int) int {
	level := 1
	for need := xpPerLevelStep; xp >= need; need += xpPerLevelStep {
		xp -= need
		level++
	}
	return level
}
