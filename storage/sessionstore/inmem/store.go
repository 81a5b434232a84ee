package inmemstore

import (
	"context"
	"sync"

	"github.com/DustinMarino133/cyberskill/core/session"
)

// Store keeps session records in a mutex-guarded map. Records never expire;
// it serves tests and single-node dev runs.
type Store struct {
	mutex   sync.RWMutex
	records map[string]session.Record
}

var _ session.Store = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]session.Record)}
}

func (s *Store) GetRecord(ctx context.Context, id string) (session.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return session.Record{}, session.ErrNoSession
	}
	return rec, nil
}

func (s *Store) PutRecord(ctx context.Context, rec session.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.records, id)
	return nil
}
