package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/toml"
)

const (
	defaultConfigPath = "~/.chatroom/config.toml"
	defaultDBPath     = "~/.chatroom/state.db"
	defaultLogPath    = "~/.chatroom/chatroom.log"

	// SecretEnv names the environment variable holding the store secret.
	SecretEnv = "CHATROOM_SECRET"
)

// flags holds the parsed command line. Only flags given explicitly are kept
// in set, so that unset flags do not shadow the config file.
type flags struct {
	configPath string
	set        map[string]string
}

func parseFlags(args []string) (flags, error) {
	fs := flag.NewFlagSet("chatroom", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "Path to config file")
	fs.String("data", "", "Directory holding aiChatData.json and users.json (default: embedded fixtures)")
	fs.String("db", defaultDBPath, "Path to the state database")
	fs.String("log", defaultLogPath, "Path to the log file")
	fs.String("reply-delay", chatroom.DefaultReplyDelay.String(), "How long the assistant types before replying")
	fs.String("secret", "", "Secret for the encrypted state database (env: "+SecretEnv+"; default: random key in <db>"+KeyFileSuffix+")")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	f := flags{configPath: *configPath, set: make(map[string]string)}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name != "config" {
			f.set[fl.Name] = fl.Value.String()
		}
	})
	return f, nil
}

// resolveConfig merges defaults, the config file, the environment and the
// flags, in increasing order of precedence.
func resolveConfig(f flags, getenv func(string) string) (chatroom.Config, error) {
	base := chatroom.DefaultConfig()
	base.DBPath = toml.ExpandHome(defaultDBPath)
	base.LogPath = toml.ExpandHome(defaultLogPath)

	cfg, err := toml.Load(toml.ExpandHome(f.configPath), base)
	if err != nil {
		return chatroom.Config{}, fmt.Errorf("config %s: %w", f.configPath, err)
	}

	if s := getenv(SecretEnv); s != "" {
		cfg.Secret = s
	}

	for name, value := range f.set {
		switch name {
		case "data":
			cfg.DataDir = toml.ExpandHome(value)
		case "db":
			cfg.DBPath = toml.ExpandHome(value)
		case "log":
			cfg.LogPath = toml.ExpandHome(value)
		case "secret":
			cfg.Secret = value
		case "reply-delay":
			d, err := time.ParseDuration(value)
			if err != nil || d <= 0 {
				return chatroom.Config{}, fmt.Errorf("-reply-delay %q: %w", value, chatroom.ErrValidation)
			}
			cfg.ReplyDelay = d
		}
	}
	return cfg.Normalize(), nil
}
