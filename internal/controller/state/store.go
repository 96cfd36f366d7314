package state

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps at most one wizard session per chat. Sessions are stored and
// returned by value so no caller holds a reference into the table.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]Session)}
}

func (s *Store) Get(chatID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Set stores sess for its chat, replacing any session already there.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ChatID] = sess
}

func (s *Store) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, chatID)
}

// Start replaces the chat's session with a fresh one.
func (s *Store) Start(chatID int64, cmd Command, step Step, draft Draft) Session {
	sess := Session{
		ID:      uuid.NewString(),
		ChatID:  chatID,
		Command: cmd,
		Step:    step,
		Draft:   draft,
	}
	s.Set(sess)
	return sess
}

// Take removes the chat's session if it is still the one with sessionID and
// reports whether it did. Only one caller can take a given session.
func (s *Store) Take(chatID int64, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok || sess.ID != sessionID {
		return false
	}
	delete(s.sessions, chatID)
	return true
}
