package bubbletea_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/chatroom"
	bt "github.com/fwojciec/chatroom/bubbletea"
	chatjson "github.com/fwojciec/chatroom/json"
	"github.com/fwojciec/chatroom/mock"
	"github.com/stretchr/testify/require"
)

const sessionsFixture = `{"sessions": [
  {"id": 1, "name": "Project kickoff", "date": "2025-01-10", "isActive": true, "userId": 1, "messages": [
    {"id": 100, "role": "user", "text": "Hi", "time": "09:00"},
    {"id": 101, "role": "assistant", "text": "Hello, how can I **help**?", "time": "09:00"}
  ]},
  {"id": 2, "name": "Budget review", "date": "2025-01-03", "isActive": false, "userId": 1, "messages": [
    {"id": 200, "role": "user", "text": "Numbers please", "time": "10:00"}
  ]},
  {"id": 3, "name": "Hiring plan", "date": "2025-02-14", "userId": 1, "messages": []},
  {"id": 4, "name": "Kickoff retro", "date": "2025-01-20", "isActive": false, "userId": 1, "messages": []},
  {"id": 5, "name": "Design sync", "date": "2024-12-31", "userId": 1, "messages": []},
  {"id": 6, "name": "Launch checklist", "date": "2025-03-02", "userId": 1, "messages": []},
  {"id": 7, "name": "Not yours", "date": "2025-03-05", "userId": 2, "messages": []}
]}`

const usersFixture = `{"users": [
  {"id": 1, "email": "ada@example.com", "password": "secret", "name": "Ada"},
  {"id": 2, "email": "bob@example.com", "password": "hunter2", "name": "Bob"}
]}`

var ada = chatroom.User{ID: 1, Email: "ada@example.com", Name: "Ada"}

func fixedNow() time.Time {
	return time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
}

func newDataset(t *testing.T) *chatjson.Dataset {
	t.Helper()
	d, err := chatjson.Decode([]byte(sessionsFixture), []byte(usersFixture), fixedNow())
	require.NoError(t, err)
	return d
}

// signedOutGate is a gate with nobody remembered.
func signedOutGate() *mock.Gate {
	return &mock.Gate{
		CurrentUserFn: func() (chatroom.User, bool) { return chatroom.User{}, false },
	}
}

// rememberedGate is a gate remembering u.
func rememberedGate(u chatroom.User) *mock.Gate {
	return &mock.Gate{
		CurrentUserFn: func() (chatroom.User, bool) { return u, true },
	}
}

func newConfig(t *testing.T, gate chatroom.Gate) bt.Config {
	t.Helper()
	d := newDataset(t)
	return bt.Config{
		Sessions:   d,
		Users:      d,
		Gate:       gate,
		ReplyDelay: 10 * time.Millisecond,
		WorkDir:    t.TempDir(),
		Now:        fixedNow,
	}
}

// initModel creates a model and sends a WindowSizeMsg to lay it out.
func initModel(t *testing.T, cfg bt.Config) bt.Model {
	t.Helper()
	return updateModel(t, bt.New(cfg), tea.WindowSizeMsg{Width: 100, Height: 30})
}

// sessionsModel returns a model signed in as ada on the sessions screen.
func sessionsModel(t *testing.T) bt.Model {
	t.Helper()
	m := initModel(t, newConfig(t, rememberedGate(ada)))
	m = updateModel(t, m, key("tab"))
	require.Equal(t, bt.ScreenSessions, m.Screen())
	return m
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateWithCmd sends a message and returns the updated Model and command.
func updateWithCmd(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// press sends each key in order.
func press(t *testing.T, m bt.Model, keys ...string) bt.Model {
	t.Helper()
	for _, k := range keys {
		m = updateModel(t, m, key(k))
	}
	return m
}

// typeText sends s one rune at a time.
func typeText(t *testing.T, m bt.Model, s string) bt.Model {
	t.Helper()
	for _, r := range s {
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(s string) tea.KeyMsg {
	named := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEscape,
		"tab":       tea.KeyTab,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"left":      tea.KeyLeft,
		"right":     tea.KeyRight,
		"backspace": tea.KeyBackspace,
		"ctrl+a":    tea.KeyCtrlA,
		"ctrl+c":    tea.KeyCtrlC,
		"ctrl+g":    tea.KeyCtrlG,
		"ctrl+k":    tea.KeyCtrlK,
		"ctrl+l":    tea.KeyCtrlL,
		"ctrl+o":    tea.KeyCtrlO,
		"ctrl+y":    tea.KeyCtrlY,
	}
	if kt, ok := named[s]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
