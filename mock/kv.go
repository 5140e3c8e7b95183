package mock

import "github.com/fwojciec/chatroom"

// Interface compliance check.
var _ chatroom.KeyValueStore = (*KeyValueStore)(nil)

// KeyValueStore is a test double for chatroom.KeyValueStore.
type KeyValueStore struct {
	GetFn    func(key string) ([]byte, error)
	SetFn    func(key string, value []byte) error
	RemoveFn func(key string) error
}

// Get delegates to GetFn.
func (s *KeyValueStore) Get(key string) ([]byte, error) {
	return s.GetFn(key)
}

// Set delegates to SetFn.
func (s *KeyValueStore) Set(key string, value []byte) error {
	return s.SetFn(key, value)
}

// Remove delegates to RemoveFn.
func (s *KeyValueStore) Remove(key string) error {
	return s.RemoveFn(key)
}
