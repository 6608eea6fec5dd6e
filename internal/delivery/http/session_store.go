package http

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopassist/backend/internal/domain"
)

// session holds one conversation's state. Its mutex serializes turns: a
// message is fully classified, resolved and answered before the next one for
// the same session is accepted.
type session struct {
	mu    sync.Mutex
	state domain.SessionState
}

// SessionStore is the in-process registry of chat sessions. Nothing is
// persisted beyond the life of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessionStore creates an empty session registry.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

// GetOrCreate returns the session for id, creating a fresh one (with a new
// id when id is empty) seeded with the assistant greeting.
func (s *SessionStore) GetOrCreate(id, greeting string) (string, *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return id, sess
		}
	}
	if id == "" {
		id = uuid.NewString()
	}

	sess := &session{}
	if greeting != "" {
		sess.state.Messages = append(sess.state.Messages, domain.ChatMessage{
			Role:    domain.RoleAssistant,
			Content: greeting,
		})
	}
	s.sessions[id] = sess
	return id, sess
}

// Messages returns a copy of a session's display log.
func (s *SessionStore) Messages(id string) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	messages := make([]domain.ChatMessage, len(sess.state.Messages))
	copy(messages, sess.state.Messages)
	return messages, nil
}

// Count returns how many sessions are live (for the health endpoint).
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
