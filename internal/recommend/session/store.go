package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultMaxSessions bounds the session cache.
	DefaultMaxSessions = 1024

	// DefaultTTL evicts idle sessions.
	DefaultTTL = 30 * time.Minute
)

// entry pairs a session's memory with its turn lock. The lock gives each
// session's memory one in-flight turn at a time.
type entry struct {
	mu     sync.Mutex
	memory *Memory
}

// Store hands out session memory keyed by session id, evicting idle
// sessions after a TTL.
type Store struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *entry]
}

// NewStore creates a session store. Non-positive arguments use defaults.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: expirable.NewLRU[string, *entry](maxSessions, nil, ttl),
	}
}

// Acquire returns the memory for the given session id, locked for exclusive
// use, together with the effective session id and a release func. An empty
// or unknown id starts a fresh session.
func (s *Store) Acquire(sessionID string) (string, *Memory, func()) {
	s.mu.Lock()
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	e, ok := s.cache.Get(sessionID)
	if !ok {
		e = &entry{memory: NewMemory()}
		s.cache.Add(sessionID, e)
	}
	s.mu.Unlock()

	e.mu.Lock()
	return sessionID, e.memory, e.mu.Unlock
}

// Peek returns the memory for an existing session together with a release
// func, or false when the session is unknown. The memory is locked until
// release is called, so debug reads wait for any in-flight turn instead of
// racing its mutations.
func (s *Store) Peek(sessionID string) (*Memory, func(), bool) {
	s.mu.Lock()
	e, ok := s.cache.Get(sessionID)
	s.mu.Unlock()
	if !ok {
		return nil, nil, false
	}
	e.mu.Lock()
	return e.memory, e.mu.Unlock, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
