package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/goldmark"
)

var _ MessageBlock = (*AssistantMessageBlock)(nil)

// AssistantMessageBlock renders an assistant reply with markdown formatting,
// an avatar and the current reaction.
type AssistantMessageBlock struct {
	msg      chatroom.Message
	renderer *goldmark.Renderer
	styles   Styles
}

// NewAssistantMessageBlock creates an AssistantMessageBlock.
func NewAssistantMessageBlock(msg chatroom.Message, r *goldmark.Renderer, styles Styles) *AssistantMessageBlock {
	return &AssistantMessageBlock{msg: msg, renderer: r, styles: styles}
}

func (b *AssistantMessageBlock) View(width int) string {
	top := b.styles.Avatar.Render(initial(AssistantName)) + " " +
		header(b.styles.Assistant.Render(AssistantName), b.msg.Time, b.styles)
	switch b.msg.Reaction() {
	case chatroom.ReactionUp:
		top += "  " + b.styles.Success.Render("👍")
	case chatroom.ReactionDown:
		top += "  " + b.styles.Error.Render("👎")
	}
	body := b.renderer.Render(b.msg.Text, max(bubbleWidth(width)-2, 10))
	return top + "\n" + lipgloss.NewStyle().PaddingLeft(2).Render(body)
}
