// Package bubbletea provides the Bubble Tea TUI for chatroom: sign-in, a
// document landing screen and the session list with its chat thread.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/fs"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// CopyFunc puts text on the clipboard.
type CopyFunc func(text string) error

// ReplyDueMsg is delivered when the simulated assistant finished "typing".
type ReplyDueMsg struct {
	Ticket chatroom.ReplyTicket
}

// DocumentsMsg carries the result of a document search.
type DocumentsMsg struct {
	Pattern string
	Docs    []fs.Document
	Err     error
}

// CopiedMsg reports the outcome of a clipboard copy.
type CopiedMsg struct {
	Preview string
	Err     error
}
