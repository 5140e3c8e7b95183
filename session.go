package chatroom

import "time"

// DateLayout is the ISO-8601 calendar date layout used for Session.Date.
const DateLayout = "2006-01-02"

// Session is a chat session owned by a single user.
type Session struct {
	ID       int
	Title    string
	Date     string // ISO-8601 calendar date, see DateLayout.
	IsActive bool
	OwnerID  int
}

// StatusLabel returns the human label of IsActive.
func (s Session) StatusLabel() string {
	if s.IsActive {
		return "Active"
	}
	return "Inactive"
}

// SessionStore provides read access to sessions and their seeded messages,
// plus in-memory creation of new sessions.
type SessionStore interface {
	// FindSessions returns the sessions visible to ownerID, in dataset order.
	FindSessions(ownerID int) []Session

	// FindSession returns the session with the given id or ErrNotFound.
	FindSession(id int) (Session, error)

	// SessionMessages returns the seeded messages for a session. Unknown ids
	// yield an empty slice.
	SessionMessages(id int) []Message

	// CreateSession appends a new active session. The new id is one greater
	// than the largest id across the whole dataset, regardless of owner.
	CreateSession(title string, ownerID int, created time.Time) (Session, error)
}
