// Package toml loads chatroom.Config from a TOML file.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/chatroom"
	toml "github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk format. Pointer fields distinguish "unset" from
// zero so that only keys present in the file override the base config.
type fileConfig struct {
	ReplyDelay *string `toml:"reply_delay"`
	PageSize   *int    `toml:"page_size"`
	DataDir    *string `toml:"data_dir"`
	DBPath     *string `toml:"db_path"`
	LogPath    *string `toml:"log_path"`
	LogLevel   *string `toml:"log_level"`
}

// Load applies the file at path on top of base. A missing or empty file
// returns base unchanged. Paths starting with "~/" are expanded.
func Load(path string, base chatroom.Config) (chatroom.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config: %w", err)
	}
	return Decode(data, base)
}

// Decode applies TOML data on top of base.
func Decode(data []byte, base chatroom.Config) (chatroom.Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return base, nil
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg := base
	if fc.ReplyDelay != nil {
		d, err := time.ParseDuration(*fc.ReplyDelay)
		if err != nil || d <= 0 {
			return base, fmt.Errorf("reply_delay %q: %w", *fc.ReplyDelay, chatroom.ErrValidation)
		}
		cfg.ReplyDelay = d
	}
	if fc.PageSize != nil {
		if *fc.PageSize <= 0 {
			return base, fmt.Errorf("page_size %d: %w", *fc.PageSize, chatroom.ErrValidation)
		}
		cfg.PageSize = *fc.PageSize
	}
	if fc.DataDir != nil {
		cfg.DataDir = ExpandHome(*fc.DataDir)
	}
	if fc.DBPath != nil {
		cfg.DBPath = ExpandHome(*fc.DBPath)
	}
	if fc.LogPath != nil {
		cfg.LogPath = ExpandHome(*fc.LogPath)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*fc.LogLevel))
	}
	return cfg, nil
}

// Encode renders cfg in the file format, secrets excluded.
func Encode(cfg chatroom.Config) ([]byte, error) {
	delay := cfg.ReplyDelay.String()
	fc := fileConfig{
		ReplyDelay: &delay,
		PageSize:   &cfg.PageSize,
		DataDir:    &cfg.DataDir,
		DBPath:     &cfg.DBPath,
		LogPath:    &cfg.LogPath,
		LogLevel:   &cfg.LogLevel,
	}
	data, err := toml.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory. The
// path is returned unchanged when the home directory is unknown.
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
