// Command chatroom is a terminal chat client with a simulated AI assistant.
//
// Usage:
//
//	chatroom [flags]
//
// Flags:
//
//	-config string       Path to config file (default: ~/.chatroom/config.toml)
//	-data string         Directory holding aiChatData.json and users.json (default: embedded fixtures)
//	-db string           Path to the state database (default: ~/.chatroom/state.db)
//	-log string          Path to the log file (default: ~/.chatroom/chatroom.log)
//	-reply-delay duration How long the assistant "types" before replying
//	-secret string       Secret for the encrypted state database (env: CHATROOM_SECRET; default: random key in <db>.key)
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/chatroom"
	bt "github.com/fwojciec/chatroom/bubbletea"
	"github.com/fwojciec/chatroom/clipboard"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatroom: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	// A missing .env is fine; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := resolveConfig(f, os.Getenv)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dataset, err := loadDataset(cfg.DataDir, time.Now())
	if err != nil {
		return err
	}

	gate, closeGate, err := openGate(ctx, cfg.DBPath, cfg.Secret)
	if err != nil {
		return err
	}
	defer closeGate()

	cb := clipboard.New()
	copyFn := func(text string) error {
		method, err := cb.Copy(text)
		if err != nil {
			return err
		}
		logger.Debug("copied", "method", method.String(), "bytes", len(text))
		return nil
	}

	logger.Info("starting", "data", cfg.DataDir, "db", cfg.DBPath, "secret", cfg.Secret != "")

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	m := bt.New(bt.Config{
		Sessions:   dataset,
		Users:      dataset,
		Gate:       gate,
		Responder:  chatroom.EchoResponder{},
		Theme:      chatroom.DefaultTheme(),
		ReplyDelay: cfg.ReplyDelay,
		PageSize:   cfg.PageSize,
		WorkDir:    wd,
		Copy:       copyFn,
		Logger:     logger,
	})

	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
