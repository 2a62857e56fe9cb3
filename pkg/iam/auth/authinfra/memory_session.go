package authinfra

import (
	"context"
	"sync"
	"time"

	"github.com/somGabriel/Proago/pkg/iam"
	"github.com/somGabriel/Proago/pkg/iam/auth"
)

// MemorySessionStore keeps refresh-token sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]auth.Session),
	}
}

func (s *MemorySessionStore) Save(ctx context.Context, session auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.RefreshToken] = session
	return nil
}

func (s *MemorySessionStore) Find(ctx context.Context, refreshToken string) (*auth.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[refreshToken]
	s.mu.RUnlock()

	if !ok {
		return nil, iam.ErrSessionNotFound()
	}
	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, refreshToken)
		s.mu.Unlock()
		return nil, iam.ErrSessionNotFound()
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, refreshToken)
	return nil
}
