package inmemdb

import (
	"context"

	"github.com/DustinMarino133/cyberskill/core/course"
)

type enrollmentRepository struct {
	db *enrollmentTable
}

var _ course.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *DB) *enrollmentRepository {
	return &enrollmentRepository{db: db.enrollment}
}

func (repo *enrollmentRepository) GetEnrollments(ctx context.Context, userID string) ([]course.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enrs := make([]course.Enrollment, 0, len(repo.db.table[userID]))
	for _, enr := range repo.db.table[userID] {
		if enr.CompletedAt != nil {
			completedAt := *enr.CompletedAt
			enr.CompletedAt = &completedAt
		}
		enrs = append(enrs, enr)
	}
	return enrs, nil
}

func (repo *enrollmentRepository) SaveEnrollment(ctx context.Context, enr course.Enrollment) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	enrs := repo.db.table[enr.UserID]
	for i := range enrs {
		if enrs[i].CourseID == enr.CourseID {
			enrs[i] = enr
			return nil
		}
	}
	repo.db.table[enr.UserID] = append(enrs, enr)
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, userID, courseID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	enrs := repo.db.table[userID]
	for i := range enrs {
		if enrs[i].CourseID == courseID {
			repo.db.table[userID] = append(enrs[:i], enrs[i+1:]...)
			return nil
		}
	}
	return nil
}
