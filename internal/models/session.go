package models

import (
	"errors"
	"time"
)

var (
	ErrMissingUserID  = errors.New("session user id is empty")
	ErrMissingBeginAt = errors.New("session begin_at is missing")
	ErrEndBeforeBegin = errors.New("session end_at precedes begin_at")
)

// RawSession is one observed presence of a user at a cluster host, as returned
// by the remote locations endpoint. EndAt is nil while the session is still
// open at fetch time. Zero-duration sessions (instantaneous badge taps) are
// valid.
type RawSession struct {
	UserID    string
	UserLogin string
	Host      string
	BeginAt   time.Time
	EndAt     *time.Time
}

// Validate checks the boundary invariants of a raw record. Callers treat a
// failure as skip-and-warn, never as a fatal condition.
func (s *RawSession) Validate() error {
	if s.UserID == "" {
		return ErrMissingUserID
	}
	if s.BeginAt.IsZero() {
		return ErrMissingBeginAt
	}
	if s.EndAt != nil && s.EndAt.Before(s.BeginAt) {
		return ErrEndBeforeBegin
	}
	return nil
}

// NormalizedInterval is a closed, immutable time interval derived from a
// RawSession. An open EndAt has already been clamped to the fetch cutoff.
type NormalizedInterval struct {
	UserID  string
	Host    string
	BeginAt time.Time
	EndAt   time.Time
}

func (iv NormalizedInterval) Duration() time.Duration {
	return iv.EndAt.Sub(iv.BeginAt)
}

// SubInterval is a maximal slice of a NormalizedInterval fully contained in
// one (day-of-week, hour-of-day) bucket.
type SubInterval struct {
	Key     BucketKey
	BeginAt time.Time
	EndAt   time.Time
}

func (s SubInterval) Duration() time.Duration {
	return s.EndAt.Sub(s.BeginAt)
}
