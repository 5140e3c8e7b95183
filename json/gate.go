package json

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/chatroom"
)

// UserKey is the key under which Gate stores the signed-in user.
const UserKey = "user"

// Interface compliance check.
var _ chatroom.Gate = (*Gate)(nil)

// userRecord is the persisted sign-in record. The password is never stored.
type userRecord struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Gate remembers the signed-in user as JSON in a KeyValueStore.
type Gate struct {
	Store chatroom.KeyValueStore
}

// NewGate returns a Gate backed by store.
func NewGate(store chatroom.KeyValueStore) *Gate {
	return &Gate{Store: store}
}

// CurrentUser returns the remembered user. Missing, undecodable or
// incomplete records report false.
func (g *Gate) CurrentUser() (chatroom.User, bool) {
	data, err := g.Store.Get(UserKey)
	if err != nil {
		return chatroom.User{}, false
	}
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return chatroom.User{}, false
	}
	if rec.Email == "" {
		return chatroom.User{}, false
	}
	return chatroom.User{ID: rec.ID, Email: rec.Email, Name: rec.Name}, true
}

// SignIn stores u without its password.
func (g *Gate) SignIn(u chatroom.User) error {
	data, err := json.Marshal(userRecord{ID: u.ID, Email: u.Email, Name: u.Name})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := g.Store.Set(UserKey, data); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// SignOut forgets the user. Signing out while signed out is not an error.
func (g *Gate) SignOut() error {
	if err := g.Store.Remove(UserKey); err != nil && !errors.Is(err, chatroom.ErrNotFound) {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}
