package core

import "time"

// Clock abstracts wall-clock reads so time-dependent rules (booster expiry,
// streaks) can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

func NewClock() Clock { return realClock{} }
