package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user message right-aligned.
type UserMessageBlock struct {
	msg    chatroom.Message
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(msg chatroom.Message, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{msg: msg, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	w := min(bubbleWidth(width), lipgloss.Width(b.msg.Text)+1)
	body := b.styles.UserMsg.Width(w).Render(b.msg.Text)
	content := lipgloss.JoinVertical(lipgloss.Right, header(UserName, b.msg.Time, b.styles), body)
	return alignRight(width, content)
}
