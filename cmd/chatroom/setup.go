package main

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/aead"
	"github.com/fwojciec/chatroom/bolt"
	chatjson "github.com/fwojciec/chatroom/json"
)

// Fixtures used when no data directory is configured.
var (
	//go:embed data/aiChatData.json
	embeddedSessions []byte

	//go:embed data/users.json
	embeddedUsers []byte
)

// newLogger returns a JSON logger writing to path. An empty path discards
// all records. The returned func closes the log file.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, chatroom.ErrValidation)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), func() { _ = f.Close() }, nil
}

// loadDataset reads the fixtures from dir, or the embedded ones when dir is
// empty.
func loadDataset(dir string, today time.Time) (*chatjson.Dataset, error) {
	if dir == "" {
		d, err := chatjson.Decode(embeddedSessions, embeddedUsers, today)
		if err != nil {
			return nil, fmt.Errorf("embedded fixtures: %w", err)
		}
		return d, nil
	}
	d, err := chatjson.Load(dir, today)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}
	return d, nil
}

// KeyFileSuffix names the generated key file kept next to the state
// database when no secret is configured.
const KeyFileSuffix = ".key"

// openGate opens the state database at dbPath and returns an encrypted Gate
// over it. Without a secret the key is read from, or generated into, the
// file dbPath+KeyFileSuffix. An empty dbPath returns a nil Gate: the user is
// then asked to sign in on every start.
func openGate(ctx context.Context, dbPath, secret string) (chatroom.Gate, func(), error) {
	if dbPath == "" {
		return nil, func() {}, nil
	}
	db, err := bolt.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open state: %w", err)
	}
	closeDB := func() { _ = db.Close() }

	if secret == "" {
		if secret, err = loadOrCreateKey(dbPath + KeyFileSuffix); err != nil {
			closeDB()
			return nil, nil, err
		}
	}
	enc, err := aead.New(ctx, db, secret)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("state encryption: %w", err)
	}
	return chatjson.NewGate(enc), closeDB, nil
}

// loadOrCreateKey returns the hex-encoded 256-bit key stored at path,
// generating and saving a random one on first use.
func loadOrCreateKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		key := strings.TrimSpace(string(data))
		if b, err := hex.DecodeString(key); err != nil || len(b) != 32 {
			return "", fmt.Errorf("key file %s: %w", path, chatroom.ErrValidation)
		}
		return key, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read key file: %w", err)
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	key := hex.EncodeToString(b)
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}
