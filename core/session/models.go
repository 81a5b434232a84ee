package session

import (
	"time"
)

// Record identifies a logged-in browser session. It is written once at login
// and only read afterwards; Role is the single field the gate consults.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// Profile is the page-hydration payload returned once a session clears the
// role gate.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Role   string `json:"role"`
	Level  int    `json:"level,omitempty"`
	XP     int    `json:"xp,omitempty"`
	Streak int    `json:"streak,omitempty"`

	Badges []string `json:"badges,omitempty"`

	// teacher portal
	ClassCount   int `json:"class_count,omitempty"`
	StudentCount int `json:"student_count,omitempty"`

	// corporate portal
	Company      string `json:"company,omitempty"`
	TeamSize     int    `json:"team_size,omitempty"`
	AvgRiskScore int    `json:"avg_risk_score,omitempty"`
}
