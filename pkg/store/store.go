package store

import (
	"context"
	"sync"
	"time"
)

// Transition is emitted after every accepted action.
type Transition struct {
	Action  string  `json:"action"`
	Session Session `json:"session"`
}

// Sink receives transitions once the store lock has been released.
type Sink interface {
	Publish(ctx context.Context, t Transition)
}

type Option func(*Store)

func WithSink(sink Sink) Option {
	return func(s *Store) {
		s.sink = sink
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is the single in-process session. Dispatch is safe for concurrent use;
// the guard checks in Reduce and the write happen under one lock, which is
// what keeps at most one upload and one chat request in flight.
type Store struct {
	mu      sync.Mutex
	session Session
	sink    Sink
	now     func() time.Time
}

func New(opts ...Option) *Store {
	s := &Store{
		session: NewSession(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dispatch applies a and returns a snapshot of the resulting session. When the
// action is rejected the current snapshot is returned with the guard error.
func (s *Store) Dispatch(ctx context.Context, a Action) (Session, error) {
	s.mu.Lock()
	next, err := Reduce(s.session, a)
	if err != nil {
		snapshot := s.session.Clone()
		s.mu.Unlock()
		return snapshot, err
	}
	next.Version = s.session.Version + 1
	next.UpdatedAt = s.now()
	s.session = next
	snapshot := next.Clone()
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.Publish(ctx, Transition{Action: a.ActionName(), Session: snapshot.Clone()})
	}
	return snapshot, nil
}

func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}
