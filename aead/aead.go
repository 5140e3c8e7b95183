// Package aead wraps a chatroom.KeyValueStore so that values are encrypted
// at rest with an AEAD wrapper from go-kms-wrapping.
package aead

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/fwojciec/chatroom"
	wrapping "github.com/hashicorp/go-kms-wrapping/v2"
	"github.com/hashicorp/go-kms-wrapping/v2/aead"
	"google.golang.org/protobuf/proto"
)

// Interface compliance check.
var _ chatroom.KeyValueStore = (*Store)(nil)

// Store encrypts values before handing them to the underlying store and
// decrypts them on the way out. Values that fail to decrypt read as
// chatroom.ErrNotFound.
type Store struct {
	next    chatroom.KeyValueStore
	wrapper wrapping.Wrapper
}

// New returns a Store over next keyed by secret. The 256-bit key is the
// SHA-256 of secret; an empty secret is rejected.
func New(ctx context.Context, next chatroom.KeyValueStore, secret string) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("empty secret: %w", chatroom.ErrValidation)
	}
	key := sha256.Sum256([]byte(secret))
	w := aead.NewWrapper()
	if _, err := w.SetConfig(ctx, wrapping.WithConfigMap(map[string]string{
		"key":    base64.StdEncoding.EncodeToString(key[:]),
		"key_id": "chatroom",
	})); err != nil {
		return nil, fmt.Errorf("configure wrapper: %w", err)
	}
	return &Store{next: next, wrapper: w}, nil
}

// Get returns the decrypted value for key.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := s.next.Get(key)
	if err != nil {
		return nil, err
	}
	var blob wrapping.BlobInfo
	if err := proto.Unmarshal(data, &blob); err != nil {
		return nil, chatroom.ErrNotFound
	}
	plain, err := s.wrapper.Decrypt(context.Background(), &blob)
	if err != nil {
		return nil, chatroom.ErrNotFound
	}
	return plain, nil
}

// Set encrypts value and stores it under key.
func (s *Store) Set(key string, value []byte) error {
	blob, err := s.wrapper.Encrypt(context.Background(), value)
	if err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	data, err := proto.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshal blob: %w", err)
	}
	return s.next.Set(key, data)
}

// Remove deletes key from the underlying store.
func (s *Store) Remove(key string) error {
	if err := s.next.Remove(key); err != nil && !errors.Is(err, chatroom.ErrNotFound) {
		return err
	}
	return nil
}
