package session

import (
	"sync"
	"time"

	"beta-program-backend/lib/betaapp/appconfig"

	"github.com/google/uuid"
)

type StoreProvider interface {
	Create(email, penName string, cfg *appconfig.ApplicationConfig) *Session
	Get(id string) *Session
	Delete(id string)
	DropIdle(ttl time.Duration) (dropped int)
}

func NewStore() StoreProvider {
	return &store{
		sessions: map[string]*Session{},
	}
}

type store struct {
	mx       sync.RWMutex
	sessions map[string]*Session
}

func (s *store) Create(email, penName string, cfg *appconfig.ApplicationConfig) *Session {
	rec := New(uuid.NewString(), email, penName, cfg)
	s.mx.Lock()
	defer s.mx.Unlock()
	s.sessions[rec.ID] = rec
	return rec
}

func (s *store) Get(id string) *Session {
	s.mx.RLock()
	defer s.mx.RUnlock()
	rec, exist := s.sessions[id]
	if !exist {
		return nil
	}
	return rec
}

func (s *store) Delete(id string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	delete(s.sessions, id)
}

func (s *store) DropIdle(ttl time.Duration) (dropped int) {
	deadline := time.Now().Add(-ttl)
	s.mx.Lock()
	defer s.mx.Unlock()
	for id, rec := range s.sessions {
		rec.mx.Lock()
		idle := rec.LastActive.Before(deadline)
		rec.mx.Unlock()
		if idle {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}
