package inmemdb

import (
	"context"

	"github.com/DustinMarino133/cyberskill/core/progress"
)

type progressRepository struct {
	db *progressTable
}

var _ progress.Repository = (*progressRepository)(nil)

func NewProgressRepository(db *DB) *progressRepository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) GetProgress(ctx context.Context, userID string) (progress.Progress, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	prog, ok := repo.db.table[userID]
	if !ok {
		return progress.Progress{}, progress.ErrNotFound
	}
	return *prog, nil
}

func (repo *progressRepository) SaveProgress(ctx context.Context, prog progress.Progress) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[prog.UserID] = &prog
	return nil
}
