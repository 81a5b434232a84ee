package session

import (
	"context"
	"testing"

	"github.com/DustinMarino133/cyberskill/core/user"
)

type fakeStore struct {
	records map[string]Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]Record)}
}

func (s *fakeStore) GetRecord(ctx context.Context, id string) (Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return Record{}, ErrNoSession
	}
	return rec, nil
}

func (s *fakeStore) PutRecord(ctx context.Context, rec Record) error {
	s.records[rec.ID] = rec
	return nil
}

func (s *fakeStore) DeleteRecord(ctx context.Context, id string) error {
	delete(s.records, id)
	return nil
}

func TestService_StartEnd(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, NewFixtureResolver())
	ctx := context.Background()

	usr := user.User{ID: "usr1", Roles: []string{user.RoleStudent, user.RoleTeacher}}
	rec, err := svc.Start(ctx, usr)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("Start() returned an empty session id")
	}
	// the session binds to the highest-priority role class
	if rec.Role != user.RoleTeacher {
		t.Errorf("Role = %q, want %q", rec.Role, user.RoleTeacher)
	}

	if _, err = svc.Get(ctx, rec.ID); err != nil {
		t.Errorf("Get() error = %v", err)
	}

	if err = svc.End(ctx, rec.ID); err != nil {
		t.Errorf("End() error = %v", err)
	}
	if _, err = svc.Get(ctx, rec.ID); err != ErrNoSession {
		t.Errorf("Get() after End() error = %v, want %v", err, ErrNoSession)
	}

	// ending an unknown session is not an error
	if err = svc.End(ctx, "gone"); err != nil {
		t.Errorf("End(unknown) error = %v", err)
	}
}

func TestService_Authorize(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, NewFixtureResolver())
	ctx := context.Background()

	student, err := svc.Start(ctx, user.User{ID: "usr1", Roles: []string{user.RoleStudent}})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	teacher, err := svc.Start(ctx, user.User{ID: "usr2", Roles: []string{user.RoleTeacher}})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	corporate, err := svc.Start(ctx, user.User{ID: "usr3", Roles: []string{user.RoleCorporate}})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tests := []struct {
		name         string
		sessionID    string
		requiredRole string
		wantErr      error
		wantName     string
	}{
		{name: "empty session id", requiredRole: user.RoleStudent, wantErr: ErrUnauthenticated},
		{name: "unknown session id", sessionID: "nope", requiredRole: user.RoleStudent, wantErr: ErrUnauthenticated},
		{name: "student on teacher portal", sessionID: student.ID, requiredRole: user.RoleTeacher, wantErr: ErrWrongRole},
		{name: "teacher on corporate portal", sessionID: teacher.ID, requiredRole: user.RoleCorporate, wantErr: ErrWrongRole},
		{name: "corporate on student portal", sessionID: corporate.ID, requiredRole: user.RoleStudent, wantErr: ErrWrongRole},
		{name: "student portal", sessionID: student.ID, requiredRole: user.RoleStudent, wantName: "Alex Chen"},
		{name: "teacher portal", sessionID: teacher.ID, requiredRole: user.RoleTeacher, wantName: "Sarah Johnson"},
		{name: "corporate portal", sessionID: corporate.ID, requiredRole: user.RoleCorporate, wantName: "Marcus Reed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := svc.Authorize(ctx, tt.sessionID, tt.requiredRole)
			if err != tt.wantErr {
				t.Fatalf("Authorize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if profile.Name != tt.wantName {
				t.Errorf("Profile.Name = %q, want %q", profile.Name, tt.wantName)
			}
			if profile.Role != tt.requiredRole {
				t.Errorf("Profile.Role = %q, want %q", profile.Role, tt.requiredRole)
			}
		})
	}
}
