package json

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/chatroom"
)

// Interface compliance checks.
var (
	_ chatroom.SessionStore = (*Dataset)(nil)
	_ chatroom.UserStore    = (*Dataset)(nil)
)

// Dataset is the decoded fixture data. Sessions created at runtime live in
// memory only and are lost on exit.
type Dataset struct {
	mu       sync.RWMutex
	sessions []chatroom.Session
	messages map[int][]chatroom.Message
	users    []chatroom.User
}

// FindSessions returns the sessions owned by ownerID in dataset order.
func (d *Dataset) FindSessions(ownerID int) []chatroom.Session {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []chatroom.Session
	for _, s := range d.sessions {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out
}

// FindSession returns the session with the given id.
func (d *Dataset) FindSession(id int) (chatroom.Session, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := slices.IndexFunc(d.sessions, func(s chatroom.Session) bool { return s.ID == id })
	if i < 0 {
		return chatroom.Session{}, chatroom.ErrNotFound
	}
	return d.sessions[i], nil
}

// SessionMessages returns a copy of the seeded messages of session id.
func (d *Dataset) SessionMessages(id int) []chatroom.Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.messages[id])
}

// CreateSession appends an active session dated created. Its id is one
// greater than the largest id of any owner.
func (d *Dataset) CreateSession(title string, ownerID int, created time.Time) (chatroom.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return chatroom.Session{}, chatroom.ErrValidation
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	next := 1
	for _, s := range d.sessions {
		next = max(next, s.ID+1)
	}
	s := chatroom.Session{
		ID:       next,
		Title:    title,
		Date:     created.Format(chatroom.DateLayout),
		IsActive: true,
		OwnerID:  ownerID,
	}
	d.sessions = append(d.sessions, s)
	return s, nil
}

// Authenticate matches email case-insensitively and password exactly. The
// returned user carries no password.
func (d *Dataset) Authenticate(email, password string) (chatroom.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	email = strings.TrimSpace(email)
	for _, u := range d.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			u.Password = ""
			return u, nil
		}
	}
	return chatroom.User{}, chatroom.ErrInvalidCredentials
}

// Users returns the fixture users without their passwords.
func (d *Dataset) Users() []chatroom.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]chatroom.User, len(d.users))
	for i, u := range d.users {
		u.Password = ""
		out[i] = u
	}
	return out
}
