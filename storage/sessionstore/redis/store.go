package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/DustinMarino133/cyberskill/core/session"
)

const keyPrefix = "session:"

// Store persists session records in Redis so sessions survive API restarts
// and are shared across instances. A zero TTL stores records without expiry.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Store = (*Store)(nil)

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) GetRecord(ctx context.Context, id string) (session.Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return session.Record{}, session.ErrNoSession
		}
		return session.Record{}, errors.Wrap(err, "reading session record")
	}

	var rec session.Record
	if err = json.Unmarshal(data, &rec); err != nil {
		return session.Record{}, errors.Wrap(err, "decoding session record")
	}
	return rec, nil
}

func (s *Store) PutRecord(ctx context.Context, rec session.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding session record")
	}
	return errors.Wrap(s.client.Set(ctx, keyPrefix+rec.ID, data, s.ttl).Err(), "storing session record")
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return errors.Wrap(s.client.Del(ctx, keyPrefix+id).Err(), "deleting session record")
}
