// Package mock provides test doubles for chatroom interfaces using function fields.
package mock

import (
	"time"

	"github.com/fwojciec/chatroom"
)

// Interface compliance checks.
var (
	_ chatroom.SessionStore = (*SessionStore)(nil)
	_ chatroom.UserStore    = (*UserStore)(nil)
)

// SessionStore is a test double for chatroom.SessionStore.
// Set the function fields for the methods you need; unset fields panic.
type SessionStore struct {
	FindSessionsFn    func(ownerID int) []chatroom.Session
	FindSessionFn     func(id int) (chatroom.Session, error)
	SessionMessagesFn func(id int) []chatroom.Message
	CreateSessionFn   func(title string, ownerID int, created time.Time) (chatroom.Session, error)
}

// FindSessions delegates to FindSessionsFn.
func (s *SessionStore) FindSessions(ownerID int) []chatroom.Session {
	return s.FindSessionsFn(ownerID)
}

// FindSession delegates to FindSessionFn.
func (s *SessionStore) FindSession(id int) (chatroom.Session, error) {
	return s.FindSessionFn(id)
}

// SessionMessages delegates to SessionMessagesFn.
func (s *SessionStore) SessionMessages(id int) []chatroom.Message {
	return s.SessionMessagesFn(id)
}

// CreateSession delegates to CreateSessionFn.
func (s *SessionStore) CreateSession(title string, ownerID int, created time.Time) (chatroom.Session, error) {
	return s.CreateSessionFn(title, ownerID, created)
}

// UserStore is a test double for chatroom.UserStore.
type UserStore struct {
	AuthenticateFn func(email, password string) (chatroom.User, error)
}

// Authenticate delegates to AuthenticateFn.
func (s *UserStore) Authenticate(email, password string) (chatroom.User, error) {
	return s.AuthenticateFn(email, password)
}
