package importer

import (
	"sync"
	"time"

	"github.com/frahmantamala/coursetrack/internal"
)

// SessionStore keeps pending import sessions in memory. Previews are cheap
// to redo, so losing sessions on restart is acceptable.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*ImportSession
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*ImportSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Put(session *ImportSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.CreatedAt = s.now()
	session.ExpiresAt = session.CreatedAt.Add(s.ttl)
	s.sessions[session.Token] = session

	// Opportunistic sweep so abandoned sessions do not pile up.
	for token, sess := range s.sessions {
		if sess.Expired(s.now()) {
			delete(s.sessions, token)
		}
	}
}

// Get returns the live session for a token. Expired sessions are removed
// and reported as not found.
func (s *SessionStore) Get(token string) (*ImportSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, internal.ErrImportSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.sessions, token)
		return nil, internal.ErrImportSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
