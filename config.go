package chatroom

import "time"

const (
	// DefaultReplyDelay is how long the simulated assistant "types".
	DefaultReplyDelay = 1500 * time.Millisecond

	// DefaultPageSize is the number of rows per page in the full list view.
	DefaultPageSize = 5
)

// Config holds runtime settings. Zero values are replaced by defaults in
// Normalize.
type Config struct {
	ReplyDelay time.Duration
	PageSize   int
	DataDir    string // empty = embedded fixtures
	DBPath     string
	LogPath    string
	LogLevel   string
	Secret     string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ReplyDelay: DefaultReplyDelay,
		PageSize:   DefaultPageSize,
		LogLevel:   "info",
	}
}

// Normalize fills zero or out-of-range fields with defaults.
func (c Config) Normalize() Config {
	if c.ReplyDelay <= 0 {
		c.ReplyDelay = DefaultReplyDelay
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}
