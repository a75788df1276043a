package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"

	"foodcourt/internal/domain"
)

// Store holds active sessions keyed by bearer token. Expired sessions
// are dropped lazily on lookup.
type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a Store whose sessions live for ttl after creation.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create issues a fresh session for an authenticated user.
func (st *Store) Create(username string, role domain.Role) (*Session, error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		id:        uuid.NewString(),
		token:     token,
		username:  username,
		role:      role,
		expiresAt: time.Now().Add(st.ttl),
	}
	st.mu.Lock()
	st.sessions[token] = sess
	st.mu.Unlock()
	return sess, nil
}

// Lookup resolves a bearer token to its session.
func (st *Store) Lookup(token string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[token]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if sess.expired(time.Now()) {
		st.mu.Lock()
		delete(st.sessions, token)
		st.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// Revoke drops a session, discarding its cart and checkout context.
func (st *Store) Revoke(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
