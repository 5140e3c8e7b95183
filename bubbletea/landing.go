package bubbletea

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/fs"
)

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o":
		return m.signOut()
	case "tab":
		return m.showSessions()
	case "ctrl+g":
		m.Pattern.SetValue(fs.ImagePattern)
		m.Pattern.CursorEnd()
		return m, m.searchDocuments()
	case "up":
		m.docIdx = max(m.docIdx-1, 0)
		return m, nil
	case "down":
		m.docIdx = min(m.docIdx+1, max(len(m.docs)-1, 0))
		return m, nil
	case "enter":
		if m.Pattern.Value() != m.docPattern || len(m.docs) == 0 {
			return m, m.searchDocuments()
		}
		return m.startChat(m.docs[m.docIdx])
	}
	var cmd tea.Cmd
	m.Pattern, cmd = m.Pattern.Update(msg)
	return m, cmd
}

// searchDocuments runs the document search off the update loop.
func (m Model) searchDocuments() tea.Cmd {
	root, pattern := m.cfg.WorkDir, m.Pattern.Value()
	return func() tea.Msg {
		docs, err := fs.FindDocuments(context.Background(), root, pattern, fs.DefaultLimit)
		return DocumentsMsg{Pattern: pattern, Docs: docs, Err: err}
	}
}

func (m Model) handleDocuments(msg DocumentsMsg) Model {
	m.docPattern = msg.Pattern
	m.docs = msg.Docs
	m.docErr = msg.Err
	m.docIdx = 0
	if msg.Err != nil {
		m.log.Warn("document search failed", "pattern", msg.Pattern, "error", msg.Err)
	}
	return m
}

// startChat creates a session named after doc, attaches doc (as an image
// when it is one) and opens it.
func (m Model) startChat(doc fs.Document) (Model, tea.Cmd) {
	before := m.view.List()
	list := before.AddSession(doc.Name)
	sessions := list.Sessions()
	if len(sessions) == len(before.Sessions()) {
		m.log.Error("create session failed", "title", doc.Name)
		return m.setStatus("Could not start a chat with "+doc.Name, true), nil
	}
	created := sessions[len(sessions)-1]
	m.log.Info("session created", "session", created.ID, "owner", created.OwnerID, "document", doc.Path)
	m.document = doc.Name
	m.view = m.view.WithList(list)
	m.screen = ScreenSessions
	m, cmd := m.openSession(created)
	tr := m.view.Transcript()
	if fs.IsImage(doc.Name) {
		tr = tr.AttachImage(doc.Name)
	} else {
		tr = tr.AttachFile(doc.Name)
	}
	m.view = m.view.WithTranscript(tr)
	visible := m.view.List().VisibleSessions()
	if i := slices.IndexFunc(visible, func(s chatroom.Session) bool { return s.ID == created.ID }); i >= 0 {
		m.cursor = i
	}
	return m.refreshChat(), cmd
}

func (m Model) showSessions() (Model, tea.Cmd) {
	m.screen = ScreenSessions
	m.status = ""
	m = m.clampCursor().layout()
	return m.refocus()
}

func (m Model) showLanding() (Model, tea.Cmd) {
	m.screen = ScreenLanding
	m.status = ""
	m, cmd := m.refocus()
	if m.docs == nil {
		return m, tea.Batch(cmd, m.searchDocuments())
	}
	return m, cmd
}

func (m Model) viewLanding() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("New Chat Session"))
	b.WriteString(m.styles.Muted.Render(" · signed in as " + m.user.Name))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Pick a document to start"))
	b.WriteString("\n\n")
	b.WriteString("Pattern " + m.Pattern.View() + "\n\n")

	rows := max(m.height-9, 1)
	switch {
	case m.docErr != nil:
		b.WriteString(m.styles.Error.Render(truncate(m.docErr.Error(), m.width)) + "\n")
	case len(m.docs) == 0:
		b.WriteString(m.styles.Muted.Render("No documents match") + "\n")
	default:
		start := max(min(m.docIdx-rows+1, len(m.docs)-rows), 0)
		end := min(start+rows, len(m.docs))
		nameW := max(m.width-30, 10)
		for i := start; i < end; i++ {
			d := m.docs[i]
			meta := fmt.Sprintf("%8s · %s", humanize.Bytes(uint64(max(d.Size, 0))), humanize.RelTime(d.ModTime, m.cfg.Now(), "ago", "from now"))
			row := "  " + cell(d.Path, nameW) + " " + m.styles.Muted.Render(truncate(meta, 26))
			if i == m.docIdx {
				row = m.styles.Selected.Render("› "+cell(d.Path, nameW)) + " " + m.styles.Muted.Render(truncate(meta, 26))
			}
			b.WriteString(row + "\n")
		}
	}

	b.WriteString("\n")
	selected := "none"
	if m.docIdx < len(m.docs) {
		selected = m.docs[m.docIdx].Name
	}
	b.WriteString("Selected file: " + m.styles.Accent.Render(selected) + "\n")
	if m.status != "" {
		b.WriteString(m.statusText() + "\n")
	}
	b.WriteString(m.styles.Muted.Render(truncate("enter start chat · ↑/↓ choose · ctrl+g images · tab sessions · ctrl+o sign out", m.width)))
	return b.String()
}
