package course

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core"
	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/shop"
)

var (
	// errors
	ErrUnknownCourse    = errors.New("unknown course")
	ErrAlreadyEnrolled  = errors.New("already enrolled in this course")
	ErrNotEnrolled      = errors.New("not enrolled in this course")
	ErrAlreadyCompleted = errors.New("course already completed")
)

type (
	Repository interface {
		GetEnrollments(ctx context.Context, userID string) ([]Enrollment, error)
		SaveEnrollment(ctx context.Context, enr Enrollment) error
		DeleteEnrollment(ctx context.Context, userID, courseID string) error
	}

	// CoinLedger credits completion rewards; the shop wallet implements it.
	CoinLedger interface {
		CreditCoins(ctx context.Context, userID string, amount int) (shop.Wallet, error)
	}

	// XPLedger awards completion XP; the progress tracker implements it.
	XPLedger interface {
		AddXP(ctx context.Context, userID string, base int) (progress.Progress, error)
	}

	Service struct {
		repo    Repository
		catalog *Catalog
		coins   CoinLedger
		xp      XPLedger
		clock   core.Clock
	}
)

func NewService(repo Repository, catalog *Catalog, coins CoinLedger, xp XPLedger, clock core.Clock) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		coins:   coins,
		xp:      xp,
		clock:   clock,
	}
}

// Courses returns the full course catalog.
func (svc *Service) Courses() []Course {
	return svc.catalog.Courses()
}

// Enrolled lists the user's enrollments, completed ones included.
func (svc *Service) Enrolled(ctx context.Context, userID string) ([]Enrollment, error) {
	enrs, err := svc.repo.GetEnrollments(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "loading enrollments")
	}
	return enrs, nil
}

func (svc *Service) enrollment(ctx context.Context, userID, courseID string) (*Enrollment, error) {
	enrs, err := svc.repo.GetEnrollments(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "loading enrollments")
	}
	for i := range enrs {
		if enrs[i].CourseID == courseID {
			return &enrs[i], nil
		}
	}
	return nil, nil
}

func (svc *Service) Enroll(ctx context.Context, userID, courseID string) (Enrollment, error) {
	if _, ok := svc.catalog.Course(courseID); !ok {
		return Enrollment{}, ErrUnknownCourse
	}

	existing, err := svc.enrollment(ctx, userID, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if existing != nil {
		return Enrollment{}, ErrAlreadyEnrolled
	}

	enr := Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: svc.clock.Now(),
	}
	if err = svc.repo.SaveEnrollment(ctx, enr); err != nil {
		return Enrollment{}, pkgerrors.Wrap(err, "saving enrollment")
	}
	return enr, nil
}

func (svc *Service) Withdraw(ctx context.Context, userID, courseID string) error {
	existing, err := svc.enrollment(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotEnrolled
	}
	return pkgerrors.Wrap(svc.repo.DeleteEnrollment(ctx, userID, courseID), "deleting enrollment")
}

// Complete marks the course done and pays out its coin and XP rewards.
// Completion is recorded before the payouts so a reward failure can never
// double-pay on retry.
func (svc *Service) Complete(ctx context.Context, userID, courseID string) (Enrollment, error) {
	crs, ok := svc.catalog.Course(courseID)
	if !ok {
		return Enrollment{}, ErrUnknownCourse
	}

	existing, err := svc.enrollment(ctx, userID, courseID)
	if err != nil {
		return Enrollment{}, err
	}
	if existing == nil {
		return Enrollment{}, ErrNotEnrolled
	}
	if existing.Completed() {
		return Enrollment{}, ErrAlreadyCompleted
	}

	now := svc.clock.Now()
	existing.CompletedAt = &now
	if err = svc.repo.SaveEnrollment(ctx, *existing); err != nil {
		return Enrollment{}, pkgerrors.Wrap(err, "saving enrollment")
	}

	if svc.coins != nil && crs.CoinReward > 0 {
		if _, err = svc.coins.CreditCoins(ctx, userID, crs.CoinReward); err != nil {
			return Enrollment{}, pkgerrors.Wrap(err, "crediting completion coins")
		}
	}
	if svc.xp != nil && crs.XPReward > 0 {
		if _, err = svc.xp.AddXP(ctx, userID, crs.XPReward); err != nil {
			return Enrollment{}, pkgerrors.Wrap(err, "awarding completion XP")
		}
	}
	return *existing, nil
}
