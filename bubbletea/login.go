package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatroom"
)

// Login screen errors.
const (
	ErrTextInvalidEmail    = "Please enter a valid email address"
	ErrTextPasswordMissing = "Password is required"
	ErrTextWrongLogin      = "Wrong email or password."
)

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginField = 1 - m.loginField
		return m.refocus()
	case "enter":
		// Enter on a valid email with no password yet moves to the password.
		if m.loginField == 0 && m.Password.Value() == "" && chatroom.ValidateEmail(strings.TrimSpace(m.Email.Value())) {
			m.loginErr = ""
			m.loginField = 1
			return m.refocus()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginField == 0 {
		m.Email, cmd = m.Email.Update(msg)
		if m.loginErr == ErrTextInvalidEmail && chatroom.ValidateEmail(strings.TrimSpace(m.Email.Value())) {
			m.loginErr = ""
		}
	} else {
		m.Password, cmd = m.Password.Update(msg)
	}
	return m, cmd
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.Email.Value())
	if !chatroom.ValidateEmail(email) {
		m.loginErr = ErrTextInvalidEmail
		m.loginField = 0
		return m.refocus()
	}
	password := m.Password.Value()
	if password == "" {
		m.loginErr = ErrTextPasswordMissing
		m.loginField = 1
		return m.refocus()
	}
	if m.cfg.Users == nil {
		m.loginErr = ErrTextWrongLogin
		return m, nil
	}
	u, err := m.cfg.Users.Authenticate(email, password)
	if err != nil {
		m.log.Warn("sign-in failed", "email", email, "error", err)
		m.loginErr = ErrTextWrongLogin
		m.Password.Reset()
		m.loginField = 1
		return m.refocus()
	}
	if m.cfg.Gate != nil {
		if err := m.cfg.Gate.SignIn(u); err != nil {
			m.log.Error("remember user", "user", u.ID, "error", err)
		}
	}
	m.log.Info("signed in", "user", u.ID)
	return m.enterLanding(u)
}

// enterLanding makes u the current user and shows the landing screen.
func (m Model) enterLanding(u chatroom.User) (Model, tea.Cmd) {
	u.Password = ""
	m.user = u
	m.loginErr = ""
	m.Password.Reset()
	m.view = chatroom.NewSplitView(
		chatroom.NewSessionList(m.cfg.Sessions, u.ID,
			chatroom.WithPageSize(m.cfg.PageSize),
			chatroom.WithClock(m.cfg.Now)),
		m.view.Transcript(),
	)
	m.cursor = 0
	m.focus = FocusList
	m.document = ""
	m.status = ""
	for i := range m.Filters {
		m.Filters[i].Reset()
	}
	m.screen = ScreenLanding
	m = m.layout()
	m, cmd := m.refocus()
	return m, tea.Batch(cmd, m.searchDocuments())
}

func (m Model) signOut() (Model, tea.Cmd) {
	if m.cfg.Gate != nil {
		if err := m.cfg.Gate.SignOut(); err != nil {
			m.log.Error("forget user", "error", err)
		}
	}
	m.log.Info("signed out", "user", m.user.ID)
	m.user = chatroom.User{}
	m.view = m.view.CloseChat()
	m.docs, m.docIdx, m.docPattern, m.docErr = nil, 0, "", nil
	m.Email.Reset()
	m.Password.Reset()
	m.Input.Reset()
	m.loginField = 0
	m.loginErr = ""
	m.status = ""
	m.focus = FocusList
	m.screen = ScreenLogin
	return m.refocus()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.styles.Accent.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(m.loginLabel("Email", 0) + m.Email.View() + "\n")
	b.WriteString(m.loginLabel("Password", 1) + m.Password.View() + "\n\n")
	if m.loginErr != "" {
		b.WriteString(m.styles.Error.Render(m.loginErr))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(truncate("enter sign in · tab switch field · ctrl+c quit", m.width)))
	return b.String()
}

func (m Model) loginLabel(label string, field int) string {
	s := cell(label, 10)
	if m.loginField == field {
		return m.styles.Accent.Render(s)
	}
	return m.styles.Muted.Render(s)
}
