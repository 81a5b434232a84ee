package course

import (
	"context"
	"testing"
	"time"

	"github.com/DustinMarino133/cyberskill/core"
	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/shop"
)

type fakeRepo struct {
	enrs map[string][]Enrollment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{enrs: make(map[string][]Enrollment)}
}

func (r *fakeRepo) GetEnrollments(ctx context.Context, userID string) ([]Enrollment, error) {
	return append([]Enrollment(nil), r.enrs[userID]...), nil
}

func (r *fakeRepo) SaveEnrollment(ctx context.Context, enr Enrollment) error {
	enrs := r.enrs[enr.UserID]
	for i := range enrs {
		if enrs[i].CourseID == enr.CourseID {
			enrs[i] = enr
			return nil
		}
	}
	r.enrs[enr.UserID] = append(enrs, enr)
	return nil
}

func (r *fakeRepo) DeleteEnrollment(ctx context.Context, userID, courseID string) error {
	enrs := r.enrs[userID]
	for i := range enrs {
		if enrs[i].CourseID == courseID {
			r.enrs[userID] = append(enrs[:i], enrs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCoinLedger struct {
	credited int
}

func (l *fakeCoinLedger) CreditCoins(ctx context.Context, userID string, amount int) (shop.Wallet, error) {
	l.credited += amount
	return shop.Wallet{UserID: userID, Coins: l.credited}, nil
}

type fakeXPLedger struct {
	awarded int
}

func (l *fakeXPLedger) AddXP(ctx context.Context, userID string, base int) (progress.Progress, error) {
	l.awarded += base
	return progress.Progress{UserID: userID, XP: l.awarded}, nil
}

type testClock struct {
	now time.Time
}

var _ core.Clock = (*testClock)(nil)

func (c *testClock) Now() time.Time { return c.now }

func newTestService() (*Service, *fakeCoinLedger, *fakeXPLedger, *testClock) {
	coins := &fakeCoinLedger{}
	xp := &fakeXPLedger{}
	clock := &testClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
	svc := NewService(newFakeRepo(), DefaultCatalog(), coins, xp, clock)
	return svc, coins, xp, clock
}

func TestService_Enroll(t *testing.T) {
	svc, _, _, clock := newTestService()
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, "usr1", "underwater-basket-weaving"); err != ErrUnknownCourse {
		t.Errorf("Enroll(unknown) error = %v, want %v", err, ErrUnknownCourse)
	}

	enr, err := svc.Enroll(ctx, "usr1", "phishing-defense")
	if err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if !enr.EnrolledAt.Equal(clock.Now()) {
		t.Errorf("EnrolledAt = %v, want %v", enr.EnrolledAt, clock.Now())
	}

	if _, err = svc.Enroll(ctx, "usr1", "phishing-defense"); err != ErrAlreadyEnrolled {
		t.Errorf("Enroll(again) error = %v, want %v", err, ErrAlreadyEnrolled)
	}

	enrs, err := svc.Enrolled(ctx, "usr1")
	if err != nil {
		t.Fatalf("Enrolled() error = %v", err)
	}
	if len(enrs) != 1 || enrs[0].CourseID != "phishing-defense" {
		t.Errorf("Enrolled() = %+v, want the single phishing-defense enrollment", enrs)
	}
}

func TestService_Withdraw(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if err := svc.Withdraw(ctx, "usr1", "phishing-defense"); err != ErrNotEnrolled {
		t.Errorf("Withdraw(not enrolled) error = %v, want %v", err, ErrNotEnrolled)
	}

	if _, err := svc.Enroll(ctx, "usr1", "phishing-defense"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if err := svc.Withdraw(ctx, "usr1", "phishing-defense"); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	enrs, err := svc.Enrolled(ctx, "usr1")
	if err != nil {
		t.Fatalf("Enrolled() error = %v", err)
	}
	if len(enrs) != 0 {
		t.Errorf("Enrolled() = %+v, want empty", enrs)
	}
}

func TestService_Complete(t *testing.T) {
	svc, coins, xp, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Complete(ctx, "usr1", "phishing-defense"); err != ErrNotEnrolled {
		t.Errorf("Complete(not enrolled) error = %v, want %v", err, ErrNotEnrolled)
	}

	if _, err := svc.Enroll(ctx, "usr1", "phishing-defense"); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	enr, err := svc.Complete(ctx, "usr1", "phishing-defense")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !enr.Completed() {
		t.Error("Completed() = false after Complete()")
	}
	if coins.credited != 120 {
		t.Errorf("coin payout = %d, want 120", coins.credited)
	}
	if xp.awarded != 250 {
		t.Errorf("xp payout = %d, want 250", xp.awarded)
	}

	// completing twice never double-pays
	if _, err = svc.Complete(ctx, "usr1", "phishing-defense"); err != ErrAlreadyCompleted {
		t.Errorf("Complete(again) error = %v, want %v", err, ErrAlreadyCompleted)
	}
	if coins.credited != 120 || xp.awarded != 250 {
		t.Errorf("payouts = (%d, %d), want unchanged (120, 250)", coins.credited, xp.awarded)
	}
}
