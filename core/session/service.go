package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core/user"
)

var (
	// errors
	ErrNoSession       = errors.New("session not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrWrongRole       = errors.New("session role does not match this portal")
)

type (
	// Store persists session Records. It is injected explicitly; there are no
	// ambient session globals.
	Store interface {
		GetRecord(ctx context.Context, id string) (Record, error)
		PutRecord(ctx context.Context, rec Record) error
		DeleteRecord(ctx context.Context, id string) error
	}

	// ProfileResolver turns an authorized Record into the Profile that
	// hydrates the portal page.
	ProfileResolver interface {
		Resolve(ctx context.Context, rec Record) (Profile, error)
	}

	Service struct {
		store    Store
		resolver ProfileResolver
	}
)

func NewService(store Store, resolver ProfileResolver) *Service {
	return &Service{store: store, resolver: resolver}
}

// Start opens a new session bound to the user's portal role.
func (svc *Service) Start(ctx context.Context, usr user.User) (Record, error) {
	rec := Record{
		ID:        uuid.New().String(),
		UserID:    usr.ID,
		Role:      usr.PortalRole(),
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.store.PutRecord(ctx, rec); err != nil {
		return Record{}, pkgerrors.Wrap(err, "storing session record")
	}
	return rec, nil
}

// End discards the session record. Ending an unknown session is not an error.
func (svc *Service) End(ctx context.Context, id string) error {
	if err := svc.store.DeleteRecord(ctx, id); err != nil && err != ErrNoSession {
		return pkgerrors.Wrap(err, "deleting session record")
	}
	return nil
}

// Get returns the raw session record, bypassing the role gate.
func (svc *Service) Get(ctx context.Context, id string) (Record, error) {
	return svc.store.GetRecord(ctx, id)
}

// Authorize gates a portal page behind its required role.
//
// A missing record yields ErrUnauthenticated and a role mismatch yields
// ErrWrongRole; both send the caller back to the login route — there is no
// cross-role redirection. On a match the resolved profile is returned.
func (svc *Service) Authorize(ctx context.Context, sessionID, requiredRole string) (Profile, error) {
	if sessionID == "" {
		return Profile{}, ErrUnauthenticated
	}

	rec, err := svc.store.GetRecord(ctx, sessionID)
	if err != nil {
		if err == ErrNoSession {
			return Profile{}, ErrUnauthenticated
		}
		return Profile{}, pkgerrors.Wrap(err, "reading session record")
	}

	if rec.Role != requiredRole {
		return Profile{}, ErrWrongRole
	}

	profile, err := svc.resolver.Resolve(ctx, rec)
	if err != nil {
		if err == ErrUnauthenticated {
			return Profile{}, err
		}
		return Profile{}, pkgerrors.Wrap(err, "resolving session profile")
	}
	return profile, nil
}
