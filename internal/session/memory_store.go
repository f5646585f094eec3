package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memorySession struct {
	userID    uint
	loggedIn  bool
	flashes   []Flash
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used when no redis address
// is configured, and by tests.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &memorySession{expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) SetUserID(ctx context.Context, sessionID string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.userID = userID
	sess.loggedIn = true
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) UserID(ctx context.Context, sessionID string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil || !sess.loggedIn {
		return 0, false, nil
	}
	return sess.userID, true, nil
}

func (s *MemoryStore) AddFlash(ctx context.Context, sessionID string, flash Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	sess.flashes = append(sess.flashes, flash)
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

func (s *MemoryStore) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil || len(sess.flashes) == 0 {
		return nil, nil
	}
	flashes := sess.flashes
	sess.flashes = nil
	return flashes, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// live returns the session if present and not expired. Expired sessions are
// dropped on access. Callers must hold the mutex.
func (s *MemoryStore) live(sessionID string) *memorySession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return nil
	}
	return sess
}
