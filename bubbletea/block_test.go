package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
	bt "github.com/fwojciec/chatroom/bubbletea"
	"github.com/fwojciec/chatroom/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStyles() bt.Styles {
	return bt.NewStyles(chatroom.DefaultTheme())
}

func testRenderer() *goldmark.Renderer {
	return goldmark.New(chatroom.DefaultTheme())
}

func assertFits(t *testing.T, view string, width int) {
	t.Helper()
	for i, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), width, "line %d too wide: %q", i, line)
	}
}

func TestNewMessageBlock(t *testing.T) {
	t.Parallel()
	r, s := testRenderer(), testStyles()

	tests := []struct {
		name string
		msg  chatroom.Message
		want any
	}{
		{"user", chatroom.Message{Role: chatroom.RoleUser, Text: "hi"}, &bt.UserMessageBlock{}},
		{"assistant", chatroom.Message{Role: chatroom.RoleAssistant, Text: "hi"}, &bt.AssistantMessageBlock{}},
		{"attachment", chatroom.Message{Role: chatroom.RoleUser, Text: "📎 notes.md"}, &bt.AttachmentBlock{}},
		{"image", chatroom.Message{Role: chatroom.RoleUser, Text: "🖼️ diagram.png"}, &bt.AttachmentBlock{}},
		{"assistant text with clip prefix stays assistant", chatroom.Message{Role: chatroom.RoleAssistant, Text: "📎 x"}, &bt.AssistantMessageBlock{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, bt.NewMessageBlock(tt.msg, r, s))
		})
	}
}

func TestUserMessageBlock(t *testing.T) {
	t.Parallel()

	t.Run("shows sender, time and text right-aligned", func(t *testing.T) {
		t.Parallel()
		b := bt.NewUserMessageBlock(chatroom.Message{Role: chatroom.RoleUser, Text: "Hello there", Time: "09:15"}, testStyles())
		view := b.View(60)

		assert.Contains(t, view, "You · 09:15")
		assert.Contains(t, view, "Hello there")
		lines := strings.Split(view, "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "Hello there"))
		assert.True(t, strings.HasPrefix(lines[1], "    "), "text is pushed right")
		assertFits(t, view, 60)
	})

	t.Run("long text wraps inside the bubble", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("word ", 40)
		b := bt.NewUserMessageBlock(chatroom.Message{Role: chatroom.RoleUser, Text: text}, testStyles())
		view := b.View(40)

		assert.Greater(t, strings.Count(view, "\n"), 2)
		assertFits(t, view, 40)
	})
}

func TestAssistantMessageBlock(t *testing.T) {
	t.Parallel()

	t.Run("avatar, name and markdown body", func(t *testing.T) {
		t.Parallel()
		msg := chatroom.Message{Role: chatroom.RoleAssistant, Text: "Use **bold** and `code`", Time: "10:00"}
		view := bt.NewAssistantMessageBlock(msg, testRenderer(), testStyles()).View(60)

		assert.Contains(t, view, " A ")
		assert.Contains(t, view, "AI Assistant · 10:00")
		assert.Contains(t, view, "bold")
		assert.NotContains(t, view, "**")
		assert.NotContains(t, view, "👍")
		assertFits(t, view, 60)
	})

	t.Run("shows the reaction", func(t *testing.T) {
		t.Parallel()
		up := chatroom.Message{Role: chatroom.RoleAssistant, Text: "ok", Likes: 1}
		down := chatroom.Message{Role: chatroom.RoleAssistant, Text: "ok", Dislikes: 1}

		assert.Contains(t, bt.NewAssistantMessageBlock(up, testRenderer(), testStyles()).View(40), "👍")
		assert.Contains(t, bt.NewAssistantMessageBlock(down, testRenderer(), testStyles()).View(40), "👎")
	})
}

func TestAttachmentBlock(t *testing.T) {
	t.Parallel()

	msg := chatroom.Message{Role: chatroom.RoleUser, Text: "📎 quarterly-report.pdf", Time: "11:00"}
	b := bt.NewAttachmentBlock(msg, testStyles())

	assert.Equal(t, "quarterly-report.pdf", b.Name())
	view := b.View(60)
	assert.Contains(t, view, "You · 11:00")
	assert.Contains(t, view, "📎 quarterly-report.pdf")
	assert.Contains(t, view, "╭")
	assertFits(t, view, 60)

	narrow := b.View(16)
	assert.Contains(t, narrow, "…")
	assertFits(t, narrow, 16)
}

func TestAttachmentBlock_Image(t *testing.T) {
	t.Parallel()

	msg := chatroom.Message{Role: chatroom.RoleUser, Text: chatroom.ImagePrefix + "diagram.png", Time: "11:05"}
	b := bt.NewAttachmentBlock(msg, testStyles())

	assert.Equal(t, "diagram.png", b.Name())
	assert.True(t, b.IsImage())
	view := b.View(60)
	assert.Contains(t, view, "🖼️ diagram.png")
	assert.NotContains(t, view, "📎")
	assertFits(t, view, 60)
}

func TestTypingBlock(t *testing.T) {
	t.Parallel()
	view := bt.NewTypingBlock("⣾", testStyles()).View(40)
	assert.Contains(t, view, "⣾ "+bt.TypingLabel)
	assertFits(t, view, 40)
}
