package mock

import "github.com/fwojciec/chatroom"

// Interface compliance check.
var _ chatroom.Gate = (*Gate)(nil)

// Gate is a test double for chatroom.Gate.
// CurrentUserFn panics when nil. SignInFn and SignOutFn are nil-safe (no-op)
// because most tests only care about the signed-in state.
type Gate struct {
	CurrentUserFn func() (chatroom.User, bool)
	SignInFn      func(u chatroom.User) error
	SignOutFn     func() error
}

// CurrentUser delegates to CurrentUserFn.
func (g *Gate) CurrentUser() (chatroom.User, bool) {
	return g.CurrentUserFn()
}

// SignIn delegates to SignInFn. Returns nil when SignInFn is not set.
func (g *Gate) SignIn(u chatroom.User) error {
	if g.SignInFn == nil {
		return nil
	}
	return g.SignInFn(u)
}

// SignOut delegates to SignOutFn. Returns nil when SignOutFn is not set.
func (g *Gate) SignOut() error {
	if g.SignOutFn == nil {
		return nil
	}
	return g.SignOutFn()
}
