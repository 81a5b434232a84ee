package progress

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core"
)

var (
	// errors
	ErrNotFound  = errors.New("progress not found")
	ErrInvalidXP = errors.New("xp amount must be positive")
)

type (
	Repository interface {
		GetProgress(ctx context.Context, userID string) (Progress, error)
		SaveProgress(ctx context.Context, prog Progress) error
	}

	// BoosterSource reports the XP multiplier currently in force for a user.
	// The shop's active booster implements it.
	BoosterSource interface {
		ActiveMultiplier(ctx context.Context, userID string) (float64, error)
	}

	Service struct {
		repo     Repository
		boosters BoosterSource
		clock    core.Clock
	}
)

func NewService(repo Repository, boosters BoosterSource, clock core.Clock) *Service {
	return &Service{repo: repo, boosters: boosters, clock: clock}
}

// Summary loads the user's progress, seeding level 1 on first use.
func (svc *Service) Summary(ctx context.Context, userID string) (Progress, error) {
	prog, err := svc.repo.GetProgress(ctx, userID)
	if err != nil {
		if err != ErrNotFound {
			return Progress{}, pkgerrors.Wrap(err, "loading progress")
		}
		prog = Progress{UserID: userID, Level: 1}
	}
	return prog, nil
}

// AddXP awards base XP multiplied by any live booster, then refreshes the
// level and the daily streak.
func (svc *Service) AddXP(ctx context.Context, userID string, base int) (Progress, error) {
	if base <= 0 {
		return Progress{}, ErrInvalidXP
	}

	prog, err := svc.Summary(ctx, userID)
	if err != nil {
		return Progress{}, err
	}

	multiplier := 1.0
	if svc.boosters != nil {
		if multiplier, err = svc.boosters.ActiveMultiplier(ctx, userID); err != nil {
			return Progress{}, pkgerrors.Wrap(err, "reading booster multiplier")
		}
	}

	now := svc.clock.Now()
	prog.XP += int(float64(base) * multiplier)
	prog.Level = LevelFor(prog.XP)
	prog.Streak = nextStreak(prog.Streak, prog.LastActivity, now)
	prog.LastActivity = now
	prog.UpdatedAt = now

	if err = svc.repo.SaveProgress(ctx, prog); err != nil {
		return Progress{}, pkgerrors.Wrap(err, "saving progress")
	}
	return prog, nil
}

// nextStreak keeps the daily streak: same-day activity preserves it,
// next-day activity extends it, anything longer restarts it.
func nextStreak(streak int, last, now time.Time) int {
	if streak == 0 || last.IsZero() {
		return 1
	}
	lastDay := last.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)
	switch today.Sub(lastDay) {
	case 0:
		return streak
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}
