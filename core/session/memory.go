package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Users are looked up through
// a UserResolver so that removing a user orphans its sessions the same way a
// relational join would.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	users    UserResolver
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(users UserResolver) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		users:    users,
	}
}

func (s *MemoryStore) Put(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return ErrDuplicateID
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) GetByHashedToken(ctx context.Context, id string) (Session, User, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, User{}, ErrNotFound
	}

	user, err := s.users.UserByID(ctx, sess.UserID)
	if err != nil {
		return Session{}, User{}, err
	}

	return sess, user, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.ExpiresAt = expiresAt
	s.sessions[id] = sess
	return nil
}

func (s *MemoryStore) DeleteAllForUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
