package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core/progress"
)

type dbProgress struct {
	UserID       string    `db:"user_id"`
	XP           int       `db:"xp"`
	Level        int       `db:"level"`
	Streak       int       `db:"streak"`
	LastActivity time.Time `db:"last_activity"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type progressRepository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *sqlx.DB) *progressRepository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) GetProgress(ctx context.Context, userID string) (progress.Progress, error) {
	var row dbProgress
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM progress WHERE user_id = $1`, userID); err != nil {
		return progress.Progress{}, trapNoRows(err, progress.ErrNotFound, "selecting progress")
	}
	return progress.Progress{
		UserID:       row.UserID,
		XP:           row.XP,
		Level:        row.Level,
		Streak:       row.Streak,
		LastActivity: row.LastActivity,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (repo *progressRepository) SaveProgress(ctx context.Context, prog progress.Progress) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO progress (user_id, xp, level, streak, last_activity, updated_at)
		VALUES (:user_id, :xp, :level, :streak, :last_activity, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET xp            = EXCLUDED.xp,
		    level         = EXCLUDED.level,
		    streak        = EXCLUDED.streak,
		    last_activity = EXCLUDED.last_activity,
		    updated_at    = EXCLUDED.updated_at`,
		dbProgress{
			UserID:       prog.UserID,
			XP:           prog.XP,
			Level:        prog.Level,
			Streak:       prog.Streak,
			LastActivity: prog.LastActivity,
			UpdatedAt:    prog.UpdatedAt,
		},
	)
	return errors.Wrap(err, "upserting progress")
}
