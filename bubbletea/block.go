package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/goldmark"
	"github.com/rivo/uniseg"
)

// Display names of the two chat participants.
const (
	UserName      = "You"
	AssistantName = "AI Assistant"
)

// MessageBlock is a renderable element in the chat thread.
// View takes a width parameter so the root model controls layout and blocks
// are testable in isolation.
type MessageBlock interface {
	View(width int) string
}

// NewMessageBlock returns the block that renders msg.
func NewMessageBlock(msg chatroom.Message, r *goldmark.Renderer, styles Styles) MessageBlock {
	switch {
	case msg.Role == chatroom.RoleAssistant:
		return NewAssistantMessageBlock(msg, r, styles)
	case strings.HasPrefix(msg.Text, chatroom.AttachmentPrefix),
		strings.HasPrefix(msg.Text, chatroom.ImagePrefix):
		return NewAttachmentBlock(msg, styles)
	default:
		return NewUserMessageBlock(msg, styles)
	}
}

// bubbleWidth is the widest a message bubble may grow inside width.
func bubbleWidth(width int) int {
	return max(width*3/4, min(width, 20))
}

// initial returns the first grapheme cluster of name, upper-cased.
func initial(name string) string {
	g, _, _, _ := uniseg.FirstGraphemeClusterInString(strings.TrimSpace(name), -1)
	if g == "" {
		return "?"
	}
	return strings.ToUpper(g)
}

// header renders "name · time".
func header(name, at string, styles Styles) string {
	if at == "" {
		return name
	}
	return name + styles.Muted.Render(" · "+at)
}

// alignRight pushes s to the right edge of width.
func alignRight(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, s)
}
