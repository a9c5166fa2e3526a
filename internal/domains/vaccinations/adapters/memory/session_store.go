package memory

import (
	"context"
	"sync"
	"time"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application"
)

// SessionStore is an in-memory application.SessionStore implementation. Every
// view session is ephemeral by design; there is nothing to persist.
type SessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

type entry struct {
	ctrl     *application.Controller
	lastUsed time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

// WithClock overrides time lookup for tests.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *SessionStore) Save(_ context.Context, id string, ctrl *application.Controller) error {
	s.sessions.Store(id, &entry{ctrl: ctrl, lastUsed: s.now()})
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*application.Controller, bool) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return nil, false
	}
	e := value.(*entry)
	s.sessions.Store(id, &entry{ctrl: e.ctrl, lastUsed: s.now()})
	return e.ctrl, true
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

// PurgeIdle drops sessions untouched for longer than ttl and reports how many
// were removed. Abandoned views would otherwise pin their drafts forever.
func (s *SessionStore) PurgeIdle(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)
	purged := 0
	s.sessions.Range(func(key, value any) bool {
		if value.(*entry).lastUsed.Before(cutoff) {
			s.sessions.Delete(key)
			purged++
		}
		return true
	})
	return purged
}

var _ application.SessionStore = (*SessionStore)(nil)
