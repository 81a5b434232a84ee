package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core/course"
)

type dbEnrollment struct {
	UserID      string     `db:"user_id"`
	CourseID    string     `db:"course_id"`
	EnrolledAt  time.Time  `db:"enrolled_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) GetEnrollments(ctx context.Context, userID string) ([]course.Enrollment, error) {
	var rows []dbEnrollment
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM enrollment WHERE user_id = $1 ORDER BY enrolled_at`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting enrollments")
	}

	enrs := make([]course.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrs = append(enrs, course.Enrollment{
			UserID:      row.UserID,
			CourseID:    row.CourseID,
			EnrolledAt:  row.EnrolledAt,
			CompletedAt: row.CompletedAt,
		})
	}
	return enrs, nil
}

func (repo *enrollmentRepository) SaveEnrollment(ctx context.Context, enr course.Enrollment) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO enrollment (user_id, course_id, enrolled_at, completed_at)
		VALUES (:user_id, :course_id, :enrolled_at, :completed_at)
		ON CONFLICT (user_id, course_id) DO UPDATE
		SET completed_at = EXCLUDED.completed_at`,
		dbEnrollment{
			UserID:      enr.UserID,
			CourseID:    enr.CourseID,
			EnrolledAt:  enr.EnrolledAt,
			CompletedAt: enr.CompletedAt,
		},
	)
	return errors.Wrap(err, "upserting enrollment")
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, userID, courseID string) error {
	_, err := repo.db.ExecContext(ctx,
		`DELETE FROM enrollment WHERE user_id = $1 AND course_id = $2`, userID, courseID)
	return errors.Wrap(err, "deleting enrollment")
}
