package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

var (
	// ErrNoSession is returned when no record exists for a token.
	ErrNoSession = errors.New("session not found")
	// ErrCorruptSession is returned when the stored record cannot be used.
	ErrCorruptSession = errors.New("session record is corrupt")
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "session"

// SessionStore persists the signed-in user under two keys per token.
type SessionStore interface {
	Save(ctx context.Context, token string, user *domain.User) error
	Load(ctx context.Context, token string) (*domain.User, error)
	Delete(ctx context.Context, token string) error
}

// UserKey holds the JSON user record.
func UserKey(prefix, token string) string {
	return fmt.Sprintf("%s:%s:user", prefix, token)
}

// TokenKey holds the token string itself.
func TokenKey(prefix, token string) string {
	return fmt.Sprintf("%s:%s:token", prefix, token)
}

// decodeSession checks the pair read back from a store.
func decodeSession(token string, rawUser, rawToken string) (*domain.User, error) {
	if rawToken != token {
		return nil, ErrCorruptSession
	}
	var u domain.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if u.ID == "" || u.Email == "" {
		return nil, ErrCorruptSession
	}
	return &u, nil
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemorySessionStore keeps session keys in process with the same layout as
// the Redis store.
type MemorySessionStore struct {
	mu     sync.Mutex
	prefix string
	ttl    time.Duration
	data   map[string]memoryEntry
	now    func() time.Time
}

// NewMemorySessionStore creates a store whose entries expire after ttl. A zero
// ttl never expires.
func NewMemorySessionStore(prefix string, ttl time.Duration) *MemorySessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &MemorySessionStore{
		prefix: prefix,
		ttl:    ttl,
		data:   make(map[string]memoryEntry),
		now:    time.Now,
	}
}

func (s *MemorySessionStore) Save(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(UserKey(s.prefix, token), string(raw))
	s.put(TokenKey(s.prefix, token), token)
	return nil
}

func (s *MemorySessionStore) Load(ctx context.Context, token string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, ok := s.get(UserKey(s.prefix, token))
	if !ok {
		return nil, ErrNoSession
	}
	rawToken, _ := s.get(TokenKey(s.prefix, token))
	return decodeSession(token, rawUser, rawToken)
}

func (s *MemorySessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, UserKey(s.prefix, token))
	delete(s.data, TokenKey(s.prefix, token))
	return nil
}

// Len counts stored keys, expired ones included.
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// put must be called with mu held.
func (s *MemorySessionStore) put(key, value string) {
	e := memoryEntry{value: value}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.data[key] = e
}

// get must be called with mu held.
func (s *MemorySessionStore) get(key string) (string, bool) {
	e, ok := s.data[key]
	if !ok {
		return "", false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.data, key)
		return "", false
	}
	return e.value, true
}
