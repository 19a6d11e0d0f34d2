// Package chat holds per-session conversation history and generates
// follow-up question suggestions.
package chat

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type message struct {
	role string
	text string
}

// Session is one conversation's append-only history. History is unbounded
// and lives only in memory.
type Session struct {
	id string

	mu       sync.Mutex
	messages []message
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Append records one turn. Role is "user" or "assistant"; any other role
// renders as "Assistant" in the history.
func (s *Session) Append(role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message{role: role, text: text})
}

// History renders the conversation as prompt text, one line per turn:
//
//	User: first question
//	Assistant: first answer
//
// An empty session renders as "".
func (s *Session) History() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, m := range s.messages {
		role := "Assistant"
		if m.role == "user" {
			role = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.text)
	}
	return b.String()
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Store keeps sessions by id. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session with the given id, creating it on first use. An
// empty id allocates a fresh session with a generated identifier.
func (st *Store) Get(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := &Session{id: id}
	st.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
