package bubbletea

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
)

const (
	dateW   = 10
	statusW = 8
)

func (m Model) updateSessions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	if msg.String() == "ctrl+o" {
		return m.signOut()
	}
	switch m.focus {
	case FocusFilter:
		return m.updateFilter(msg)
	case FocusDialog:
		return m.updateDialog(msg)
	case FocusChat:
		return m.updateChat(msg)
	case FocusActions:
		return m.updateActions(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.view.List()
	switch msg.String() {
	case "up", "k":
		m.cursor--
		return m.clampCursor(), nil
	case "down", "j":
		m.cursor++
		return m.clampCursor(), nil
	case "enter":
		rows := list.VisibleSessions()
		if len(rows) == 0 {
			return m, nil
		}
		return m.openSession(rows[m.cursor])
	case "/":
		m.focus = FocusFilter
		return m.refocus()
	case "1":
		return m.withList(list.ToggleSort(chatroom.SortTitle)), nil
	case "2":
		return m.withList(list.ToggleSort(chatroom.SortDate)), nil
	case "3":
		return m.withList(list.ToggleSort(chatroom.SortStatus)), nil
	case "d":
		for i := range m.Filters {
			m.Filters[i].Reset()
		}
		m.cursor = 0
		return m.withList(list.ResetFilters()), nil
	case "a":
		m.focus = FocusDialog
		m.NewTitle.SetValue(list.NewTitle())
		m = m.withList(list.OpenAddDialog())
		return m.refocus()
	case "left", "h":
		if !list.Compact() && list.Query().Page > 1 {
			m.cursor = 0
			return m.withList(list.SetPage(list.Query().Page - 1)), nil
		}
		return m, nil
	case "right", "l":
		if !list.Compact() && list.Query().Page < list.PageCount() {
			m.cursor = 0
			return m.withList(list.SetPage(list.Query().Page + 1)), nil
		}
		return m, nil
	case "tab":
		if _, ok := m.view.Selected(); ok {
			m.focus = FocusChat
			return m.refocus()
		}
		return m, nil
	case "esc":
		if _, ok := m.view.Selected(); ok {
			return m.closeChat()
		}
		return m, nil
	case "n":
		return m.showLanding()
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.focus = FocusList
		return m.refocus()
	case "tab":
		m.filterField = (m.filterField + 1) % len(m.Filters)
		return m.refocus()
	case "shift+tab":
		m.filterField = (m.filterField + len(m.Filters) - 1) % len(m.Filters)
		return m.refocus()
	}
	var cmd tea.Cmd
	m.Filters[m.filterField], cmd = m.Filters[m.filterField].Update(msg)
	return m.applyFilters(), cmd
}

// applyFilters copies the filter inputs into the list query. A changed
// query returns to the first page.
func (m Model) applyFilters() Model {
	old := m.view.List()
	list := old.
		SetTitleQuery(m.Filters[0].Value()).
		SetDateQuery(m.Filters[1].Value()).
		SetStatusQuery(m.Filters[2].Value())
	if list.Query() != old.Query() {
		list = list.SetPage(1)
		m.cursor = 0
	}
	return m.withList(list)
}

func (m Model) updateDialog(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.view.List()
	switch msg.String() {
	case "esc":
		m.focus = FocusList
		m = m.withList(list.CloseAddDialog())
		return m.refocus()
	case "enter":
		title := m.NewTitle.Value()
		if strings.TrimSpace(title) == "" {
			return m.setStatus("Title is required", true), nil
		}
		before := len(list.Sessions())
		list = list.AddSession(title)
		if len(list.Sessions()) == before {
			m.log.Error("create session failed", "title", title)
			return m.setStatus("Could not create session", true), nil
		}
		created := list.Sessions()[before]
		m.log.Info("session created", "session", created.ID, "owner", created.OwnerID)
		m.NewTitle.Reset()
		m.focus = FocusList
		m = m.withList(list).setStatus(fmt.Sprintf("Created %q", created.Title), false)
		return m.refocus()
	}
	var cmd tea.Cmd
	m.NewTitle, cmd = m.NewTitle.Update(msg)
	return m.withList(list.SetNewTitle(m.NewTitle.Value())), cmd
}

// withList replaces the session list and keeps the cursor in range.
func (m Model) withList(l chatroom.SessionList) Model {
	m.view = m.view.WithList(l)
	return m.clampCursor()
}

func (m Model) clampCursor() Model {
	n := len(m.view.List().VisibleSessions())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
	return m
}

func (m Model) viewSessions() string {
	bodyH := max(m.height-1, 1)
	box := lipgloss.NewStyle().Height(bodyH).MaxHeight(bodyH)
	var body string
	if m.view.Compact() {
		listW, chatW := m.paneWidths()
		left := box.Width(listW).MaxWidth(listW).Render(m.viewCompactList(listW))
		sep := m.styles.Muted.Render(strings.TrimSuffix(strings.Repeat("│\n", bodyH), "\n"))
		right := box.Width(chatW).MaxWidth(chatW).Render(m.viewChat(chatW))
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
	} else {
		body = box.Render(m.viewTable(m.width))
	}
	return body + "\n" + m.statusLine()
}

func (m Model) viewTable(width int) string {
	list := m.view.List()
	var b strings.Builder

	b.WriteString(m.styles.Accent.Render("Sessions"))
	b.WriteString(m.styles.Muted.Render(" · " + m.user.Name))
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	titleW := max(width-dateW-statusW-6, 8)
	head := "  " + cell("Title"+m.sortMarker(chatroom.SortTitle), titleW) + "  " +
		cell("Date"+m.sortMarker(chatroom.SortDate), dateW) + "  " +
		cell("Status"+m.sortMarker(chatroom.SortStatus), statusW)
	b.WriteString(m.styles.Muted.Render(head))
	b.WriteString("\n")

	rows := list.VisibleSessions()
	if len(rows) == 0 {
		b.WriteString(m.styles.Muted.Render("  No sessions found"))
		b.WriteString("\n")
	}
	for i, s := range rows {
		b.WriteString(m.tableRow(s, titleW, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Page %d/%d · %d sessions", list.Query().Page, list.PageCount(), len(list.Filtered()))))

	if list.DialogOpen() {
		b.WriteString("\n\n")
		b.WriteString(m.viewDialog())
	}
	return b.String()
}

func (m Model) tableRow(s chatroom.Session, titleW int, current bool) string {
	status := m.styles.Muted.Render(cell(s.StatusLabel(), statusW))
	if s.IsActive {
		status = m.styles.Success.Render(cell(s.StatusLabel(), statusW))
	}
	text := cell(s.Title, titleW) + "  " + cell(s.Date, dateW)
	if current && m.focus == FocusList {
		return m.styles.Selected.Render("› "+text) + "  " + status
	}
	if current {
		return "› " + text + "  " + status
	}
	return "  " + text + "  " + status
}

func (m Model) viewCompactList(width int) string {
	list := m.view.List()
	sel, _ := m.view.Selected()
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render(truncate("Sessions", width)))
	b.WriteString("\n")
	if q := list.Query(); q.Title != "" || q.Date != "" || q.Status != "" || m.focus == FocusFilter {
		b.WriteString(m.filterBar())
		b.WriteString("\n")
	}
	for i, s := range list.VisibleSessions() {
		dot := m.styles.Muted.Render("○")
		if s.IsActive {
			dot = m.styles.Success.Render("●")
		}
		title := cell(s.Title, max(width-4, 1))
		switch {
		case i == m.cursor && m.focus == FocusList:
			title = m.styles.Selected.Render(title)
		case s.ID == sel.ID:
			title = m.styles.Accent.Render(title)
		}
		b.WriteString(dot + " " + title + "\n")
	}
	if list.DialogOpen() {
		b.WriteString("\n")
		b.WriteString(m.viewDialog())
	}
	return b.String()
}

func (m Model) viewDialog() string {
	return m.styles.Dialog.Render(
		m.styles.Accent.Render("New session") + "\n" +
			m.NewTitle.View() + "\n" +
			m.styles.Muted.Render("enter create · esc cancel"))
}

func (m Model) filterBar() string {
	parts := make([]string, len(m.Filters))
	for i, f := range m.Filters {
		label := filterLabels[i] + ": "
		if m.focus == FocusFilter && i == m.filterField {
			label = m.styles.Accent.Render(label)
		} else {
			label = m.styles.Muted.Render(label)
		}
		parts[i] = label + f.View()
	}
	return strings.Join(parts, "  ")
}

func (m Model) sortMarker(col chatroom.SortColumn) string {
	q := m.view.List().Query()
	if q.Sort != col {
		return ""
	}
	if q.Direction == chatroom.Descending {
		return " ▼"
	}
	return " ▲"
}

func (m Model) statusLine() string {
	if m.status != "" {
		return m.statusText()
	}
	var hint string
	switch m.focus {
	case FocusFilter:
		hint = "type to filter · tab next field · esc done"
	case FocusDialog:
		hint = "enter create · esc cancel"
	case FocusChat:
		hint = "enter send · ctrl+l like · ctrl+k dislike · ctrl+y copy · ctrl+a actions · tab list · esc close"
	case FocusActions:
		hint = "↑/↓ choose · enter apply · esc back"
	default:
		if m.view.Compact() {
			hint = "↑/↓ move · enter open · tab chat · esc close · / filter · a add · n new · ctrl+o sign out"
		} else {
			hint = "↑/↓ move · enter open · / filter · 1/2/3 sort · d default · a add · ←/→ page · n new · ctrl+o sign out"
		}
	}
	return m.styles.Muted.Render(truncate(hint, m.width))
}

func (m Model) statusText() string {
	s := truncate(m.status, m.width)
	if m.statusErr {
		return m.styles.Error.Render(s)
	}
	return m.styles.Success.Render(s)
}
