package bubbletea

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/fs"
	"github.com/fwojciec/chatroom/goldmark"
	"github.com/mattn/go-runewidth"
)

var _ tea.Model = Model{}

// Screen is a top-level screen of the TUI.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenLanding
	ScreenSessions
)

// Focus is the element of the sessions screen receiving keys.
type Focus int

const (
	FocusList Focus = iota
	FocusFilter
	FocusDialog
	FocusChat
	FocusActions
)

// Actions lists the entries of the chat actions menu. The first three fill
// the input; the last two attach the file picked on the landing screen.
var Actions = []string{
	"Summarize this text",
	"Fix grammar",
	"Generate ideas",
	"Attach file",
	"Attach image",
}

const (
	attachFileAction  = 3
	attachImageAction = 4
)

// Config holds the dependencies and settings of a Model.
type Config struct {
	Sessions  chatroom.SessionStore
	Users     chatroom.UserStore
	Gate      chatroom.Gate     // optional; nil never remembers the user
	Responder chatroom.Responder // optional; default EchoResponder
	Theme     chatroom.Theme     // zero value means DefaultTheme

	ReplyDelay time.Duration
	PageSize   int
	WorkDir    string // root of the document search; default "."

	Copy   CopyFunc     // optional; nil disables copying
	Logger *slog.Logger // optional; nil discards
	Now    func() time.Time
}

// Model is the Bubble Tea model for the chatroom TUI.
type Model struct {
	// Text inputs and the chat viewport. Exported for test access.
	Email    textinput.Model
	Password textinput.Model
	Pattern  textinput.Model
	NewTitle textinput.Model
	Filters  [3]textinput.Model // title, date, status
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	cfg      Config
	log      *slog.Logger
	styles   Styles
	renderer *goldmark.Renderer

	screen Screen
	focus  Focus
	user   chatroom.User

	loginField int // 0 email, 1 password
	loginErr   string

	docs       []fs.Document
	docIdx     int
	docPattern string // pattern of the last finished search
	docErr     error
	document   string // name of the document the chat was started with

	view        chatroom.SplitView
	cursor      int
	filterField int
	actionIdx   int

	status    string
	statusErr bool

	width, height int
	ready         bool
}

var filterLabels = [3]string{"Title", "Date", "Status"}

// New creates a Model. A user remembered by cfg.Gate skips the login screen.
func New(cfg Config) Model {
	if cfg.Theme == (chatroom.Theme{}) {
		cfg.Theme = chatroom.DefaultTheme()
	}
	if cfg.ReplyDelay <= 0 {
		cfg.ReplyDelay = chatroom.DefaultReplyDelay
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = chatroom.DefaultPageSize
	}
	if cfg.Responder == nil {
		cfg.Responder = chatroom.EchoResponder{}
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	m := Model{
		Email:    newInput("you@example.com"),
		Password: newInput("password"),
		Pattern:  newInput(fs.DefaultPattern),
		NewTitle: newInput("Session title"),
		Input:    newInput("Type a message"),
		Viewport: viewport.New(0, 0),
		Spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		cfg:      cfg,
		log:      log,
		styles:   NewStyles(cfg.Theme),
		renderer: goldmark.New(cfg.Theme),
	}
	m.Password.EchoMode = textinput.EchoPassword
	m.Password.EchoCharacter = '•'
	m.Pattern.SetValue(fs.DefaultPattern)
	for i, label := range filterLabels {
		m.Filters[i] = newInput(label)
		m.Filters[i].Width = 12
	}

	// One transcript lives as long as the model so reply tickets issued
	// before a sign-out never match a later chat.
	m.view = chatroom.NewSplitView(
		chatroom.NewSessionList(nil, 0),
		chatroom.NewTranscript(
			chatroom.WithResponder(cfg.Responder),
			chatroom.WithTranscriptClock(cfg.Now)),
	)

	if cfg.Gate != nil {
		if u, ok := cfg.Gate.CurrentUser(); ok {
			m, _ = m.enterLanding(u)
			return m
		}
	}
	m, _ = m.refocus()
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 0
	return ti
}

// Screen returns the current screen.
func (m Model) Screen() Screen { return m.screen }

// Focus returns the focused element of the sessions screen.
func (m Model) Focus() Focus { return m.focus }

// User returns the signed-in user.
func (m Model) User() (chatroom.User, bool) { return m.user, m.screen != ScreenLogin }

// SplitView returns the session list and transcript state.
func (m Model) SplitView() chatroom.SplitView { return m.view }

// Cursor returns the highlighted row of the visible session list.
func (m Model) Cursor() int { return m.cursor }

// Status returns the status line message, if any.
func (m Model) Status() string { return m.status }

// LoginError returns the login screen error, if any.
func (m Model) LoginError() string { return m.loginErr }

// Documents returns the documents found on the landing screen.
func (m Model) Documents() []fs.Document { return m.docs }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.screen == ScreenLanding {
		return tea.Batch(textinput.Blink, m.searchDocuments())
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m.layout(), nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenLogin:
			return m.updateLogin(msg)
		case ScreenLanding:
			return m.updateLanding(msg)
		default:
			return m.updateSessions(msg)
		}

	case ReplyDueMsg:
		return m.deliverReply(msg.Ticket), nil

	case DocumentsMsg:
		return m.handleDocuments(msg), nil

	case CopiedMsg:
		if msg.Err != nil {
			m.log.Warn("copy failed", "error", msg.Err)
			m.status, m.statusErr = "Copy failed: "+msg.Err.Error(), true
			return m, nil
		}
		m.status, m.statusErr = "Copied “"+msg.Preview+"”", false
		return m, nil

	case spinner.TickMsg:
		if !m.awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m.refreshChat(), cmd
	}

	// Cursor blinks for the focused input, mouse wheel for the viewport.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.screen == ScreenSessions && m.view.Compact() {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	m, cmd = m.updateFocusedInput(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	switch m.screen {
	case ScreenLogin:
		return m.viewLogin()
	case ScreenLanding:
		return m.viewLanding()
	default:
		return m.viewSessions()
	}
}

// refocus focuses the one input matching the current screen and focus.
func (m Model) refocus() (Model, tea.Cmd) {
	m.Email.Blur()
	m.Password.Blur()
	m.Pattern.Blur()
	m.NewTitle.Blur()
	m.Input.Blur()
	for i := range m.Filters {
		m.Filters[i].Blur()
	}
	switch m.screen {
	case ScreenLogin:
		if m.loginField == 0 {
			return m, m.Email.Focus()
		}
		return m, m.Password.Focus()
	case ScreenLanding:
		return m, m.Pattern.Focus()
	}
	switch m.focus {
	case FocusFilter:
		return m, m.Filters[m.filterField].Focus()
	case FocusDialog:
		return m, m.NewTitle.Focus()
	case FocusChat:
		return m, m.Input.Focus()
	}
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.Email.Focused():
		m.Email, cmd = m.Email.Update(msg)
	case m.Password.Focused():
		m.Password, cmd = m.Password.Update(msg)
	case m.Pattern.Focused():
		m.Pattern, cmd = m.Pattern.Update(msg)
	case m.NewTitle.Focused():
		m.NewTitle, cmd = m.NewTitle.Update(msg)
	case m.Input.Focused():
		m.Input, cmd = m.Input.Update(msg)
	default:
		for i := range m.Filters {
			if m.Filters[i].Focused() {
				m.Filters[i], cmd = m.Filters[i].Update(msg)
			}
		}
	}
	return m, cmd
}

// layout sizes the viewport and inputs for the terminal size.
func (m Model) layout() Model {
	if !m.ready {
		return m
	}
	_, chatW := m.paneWidths()
	menu := 0
	if m.focus == FocusActions {
		menu = len(Actions)
	}
	// Chat pane: header, viewport, menu, input. Status line below.
	m.Viewport.Width = chatW
	m.Viewport.Height = max(m.height-3-menu, 1)
	m.Input.Width = max(chatW-3, 1)
	m.Email.Width = max(min(m.width-12, 40), 1)
	m.Password.Width = m.Email.Width
	m.Pattern.Width = max(min(m.width-10, 60), 1)
	m.NewTitle.Width = max(min(m.width-8, 40), 1)
	return m.refreshChat()
}

// paneWidths splits the terminal into the compact list and the chat pane.
func (m Model) paneWidths() (list, chat int) {
	list = min(max(m.width/3, 24), max(m.width-20, 1))
	chat = max(m.width-list-1, 1)
	return list, chat
}

func (m Model) setStatus(s string, isErr bool) Model {
	m.status, m.statusErr = s, isErr
	return m
}

// truncate shortens s to w cells with an ellipsis.
func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}

// cell truncates and pads s to exactly w cells.
func cell(s string, w int) string {
	return runewidth.FillRight(truncate(s, w), w)
}
