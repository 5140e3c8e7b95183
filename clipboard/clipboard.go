// Package clipboard copies text to the system clipboard, falling back to an
// OSC52 escape sequence written to the controlling terminal.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Method reports how text reached the clipboard.
type Method uint8

const (
	MethodSystem Method = iota
	MethodOSC52
)

// String returns "system" or "osc52".
func (m Method) String() string {
	if m == MethodOSC52 {
		return "osc52"
	}
	return "system"
}

// Clipboard writes text using the system clipboard first and OSC52 second.
// Every field may be replaced in tests.
type Clipboard struct {
	WriteAll func(text string) error
	OpenTTY  func() (io.WriteCloser, error)
	Getenv   func(key string) string
}

// New returns a Clipboard wired to the real system.
func New() *Clipboard {
	return &Clipboard{
		WriteAll: clipboard.WriteAll,
		OpenTTY: func() (io.WriteCloser, error) {
			return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		},
		Getenv: os.Getenv,
	}
}

// Copy puts text on the clipboard and reports the method that worked.
func (c *Clipboard) Copy(text string) (Method, error) {
	sysErr := c.WriteAll(text)
	if sysErr == nil {
		return MethodSystem, nil
	}
	oscErr := c.writeOSC52(text)
	if oscErr == nil {
		return MethodOSC52, nil
	}
	return MethodSystem, fmt.Errorf("copy to clipboard: %w", errors.Join(sysErr, oscErr))
}

func (c *Clipboard) writeOSC52(text string) error {
	if !c.supportsOSC52() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := c.OpenTTY()
	if err != nil {
		return fmt.Errorf("open tty: %w", err)
	}
	defer tty.Close()
	return c.WriteSequence(tty, text)
}

// WriteSequence writes the OSC52 sequence for text to w, wrapped for tmux
// or screen when running inside one.
func (c *Clipboard) WriteSequence(w io.Writer, text string) error {
	term := strings.ToLower(strings.TrimSpace(c.Getenv("TERM")))
	seq := osc52.New(text)
	switch {
	case c.Getenv("TMUX") != "":
		// Plain and tmux-wrapped, for either tmux clipboard setting.
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		_, err := seq.Tmux().WriteTo(w)
		return err
	case strings.HasPrefix(term, "screen"):
		_, err := seq.Screen().WriteTo(w)
		return err
	default:
		_, err := seq.WriteTo(w)
		return err
	}
}

func (c *Clipboard) supportsOSC52() bool {
	term := strings.ToLower(strings.TrimSpace(c.Getenv("TERM")))
	return term != "" && term != "dumb"
}
