package booking

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// sessionTTL bounds how long an abandoned wizard survives. Every write
// refreshes the clock.
const sessionTTL = 30 * time.Minute

type sessionStore struct {
	cache *gocache.Cache
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		cache: gocache.New(sessionTTL, 10*time.Minute),
	}
}

func (s *sessionStore) get(id uuid.UUID) (*Wizard, error) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*Wizard), nil
}

func (s *sessionStore) put(w *Wizard) {
	s.cache.Set(w.SessionID.String(), w, sessionTTL)
}

func (s *sessionStore) delete(id uuid.UUID) {
	s.cache.Delete(id.String())
}
