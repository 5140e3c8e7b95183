package bubbletea

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/fs"
)

func (m Model) updateChat(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.awaiting() {
			return m, nil
		}
		return m.sendMessage()
	case "esc":
		return m.closeChat()
	case "tab":
		m.focus = FocusList
		return m.refocus()
	case "ctrl+l":
		return m.react(chatroom.ReactionUp), nil
	case "ctrl+k":
		return m.react(chatroom.ReactionDown), nil
	case "ctrl+y":
		return m.copyLast()
	case "ctrl+a":
		m.focus = FocusActions
		m.actionIdx = 0
		m = m.layout()
		return m.refocus()
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.view = m.view.WithTranscript(m.view.Transcript().SetDraft(m.Input.Value()))
	return m, cmd
}

func (m Model) updateActions(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "shift+tab":
		m.actionIdx = (m.actionIdx + len(Actions) - 1) % len(Actions)
	case "down", "j", "tab":
		m.actionIdx = (m.actionIdx + 1) % len(Actions)
	case "esc":
		m.focus = FocusChat
		m = m.layout()
		return m.refocus()
	case "enter":
		return m.applyAction(m.actionIdx)
	}
	return m, nil
}

func (m Model) applyAction(i int) (Model, tea.Cmd) {
	m.focus = FocusChat
	switch i {
	case attachFileAction:
		if m.document == "" {
			m = m.setStatus("Pick a document on the start screen first", true)
		} else {
			m.view = m.view.WithTranscript(m.view.Transcript().AttachFile(m.document))
		}
	case attachImageAction:
		if !fs.IsImage(m.document) {
			m = m.setStatus("Pick an image on the start screen first", true)
		} else {
			m.view = m.view.WithTranscript(m.view.Transcript().AttachImage(m.document))
		}
	default:
		m.Input.SetValue(Actions[i])
		m.Input.CursorEnd()
		m.view = m.view.WithTranscript(m.view.Transcript().SetDraft(Actions[i]))
	}
	m = m.layout()
	return m.refocus()
}

// openSession selects s and moves the focus to its chat.
func (m Model) openSession(s chatroom.Session) (Model, tea.Cmd) {
	m.view = m.view.SelectSession(s)
	m.focus = FocusChat
	m.Input.Reset()
	m.log.Info("session opened", "session", s.ID)
	m = m.clampCursor().layout()
	return m.refocus()
}

func (m Model) closeChat() (Model, tea.Cmd) {
	if tk, ok := m.view.Transcript().Pending(); ok {
		m.log.Debug("pending reply abandoned", "session", tk.SessionID, "seq", tk.Seq)
	}
	m.view = m.view.CloseChat()
	m.focus = FocusList
	m.Input.Reset()
	m = m.clampCursor().layout()
	return m.refocus()
}

func (m Model) sendMessage() (Model, tea.Cmd) {
	tr, ticket, ok := m.view.Transcript().SendMessage(m.Input.Value())
	if !ok {
		return m, nil
	}
	m.view = m.view.WithTranscript(tr)
	m.Input.Reset()
	m.log.Debug("message sent", "session", ticket.SessionID, "seq", ticket.Seq)
	return m.refreshChat(), tea.Batch(scheduleReply(ticket, m.cfg.ReplyDelay), m.Spinner.Tick)
}

// scheduleReply delivers ticket back to the model after delay.
func scheduleReply(ticket chatroom.ReplyTicket, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ReplyDueMsg{Ticket: ticket}
	})
}

func (m Model) deliverReply(ticket chatroom.ReplyTicket) Model {
	tr, ok := m.view.Transcript().DeliverReply(ticket)
	if !ok {
		m.log.Debug("stale reply dropped", "session", ticket.SessionID, "seq", ticket.Seq)
		return m
	}
	m.view = m.view.WithTranscript(tr)
	m.log.Info("reply delivered", "session", ticket.SessionID, "seq", ticket.Seq)
	return m.refreshChat()
}

func (m Model) react(kind chatroom.Reaction) Model {
	tr := m.view.Transcript()
	last, ok := tr.LastAssistant()
	if !ok {
		return m
	}
	m.view = m.view.WithTranscript(tr.SetReaction(last.ID, kind))
	return m.refreshChat()
}

func (m Model) copyLast() (Model, tea.Cmd) {
	last, ok := m.view.Transcript().LastAssistant()
	if !ok {
		return m.setStatus("Nothing to copy", true), nil
	}
	if m.cfg.Copy == nil {
		return m.setStatus("Clipboard unavailable", true), nil
	}
	copyFn, text := m.cfg.Copy, last.Text
	preview := truncate(m.renderer.Plain(text), 30)
	return m, func() tea.Msg {
		return CopiedMsg{Preview: preview, Err: copyFn(text)}
	}
}

func (m Model) awaiting() bool {
	return m.view.Transcript().State() == chatroom.TranscriptAwaitingReply
}

// refreshChat re-renders the transcript into the viewport.
func (m Model) refreshChat() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderTranscript(m.Viewport.Width))
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderTranscript(width int) string {
	tr := m.view.Transcript()
	if tr.State() == chatroom.TranscriptIdle || width <= 0 {
		return ""
	}
	msgs := tr.Messages()
	blocks := make([]MessageBlock, 0, len(msgs)+1)
	for _, msg := range msgs {
		blocks = append(blocks, NewMessageBlock(msg, m.renderer, m.styles))
	}
	if m.awaiting() {
		blocks = append(blocks, NewTypingBlock(m.Spinner.View(), m.styles))
	}
	if len(blocks) == 0 {
		return m.styles.Muted.Render("No messages yet. Say hello!")
	}
	views := make([]string, len(blocks))
	for i, b := range blocks {
		views[i] = b.View(width)
	}
	return strings.Join(views, "\n\n")
}

func (m Model) viewChat(width int) string {
	tr := m.view.Transcript()
	sel, _ := m.view.Selected()

	title := m.styles.Accent.Render(truncate(tr.Title(), max(width/2, 1)))
	if d, ok := chatroom.ParseDate(sel.Date); ok {
		title += m.styles.Muted.Render(" · " + humanize.RelTime(d, m.cfg.Now(), "ago", "from now"))
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	if m.focus == FocusActions {
		for i, a := range Actions {
			line := "  " + a
			if i == m.actionIdx {
				line = m.styles.Selected.Render("› " + a)
			}
			b.WriteString(line + "\n")
		}
	}
	prompt := m.styles.Accent.Render("› ")
	if m.awaiting() {
		prompt = m.styles.Muted.Render("… ")
	}
	b.WriteString(lipgloss.NewStyle().MaxWidth(width).Render(prompt + m.Input.View()))
	return b.String()
}
