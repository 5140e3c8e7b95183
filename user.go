package chatroom

import "regexp"

// User is an account that can sign in.
type User struct {
	ID       int
	Email    string
	Name     string
	Password string // fixture only; never persisted by a Gate
}

// UserStore authenticates users.
type UserStore interface {
	// Authenticate returns the user matching email and password, or
	// ErrInvalidCredentials.
	Authenticate(email, password string) (User, error)
}

// Gate remembers the signed-in user between runs.
type Gate interface {
	// CurrentUser returns the remembered user. Absent or undecodable
	// records report false.
	CurrentUser() (User, bool)
	SignIn(u User) error
	SignOut() error
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}
