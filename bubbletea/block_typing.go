package bubbletea

import "github.com/charmbracelet/lipgloss"

var _ MessageBlock = (*TypingBlock)(nil)

// TypingLabel is shown while a reply is pending.
const TypingLabel = "AI is thinking..."

// TypingBlock renders the pending-reply indicator.
type TypingBlock struct {
	frame  string
	styles Styles
}

// NewTypingBlock creates a TypingBlock showing the spinner frame.
func NewTypingBlock(frame string, styles Styles) *TypingBlock {
	return &TypingBlock{frame: frame, styles: styles}
}

func (b *TypingBlock) View(width int) string {
	return lipgloss.NewStyle().Width(width).Render(b.styles.Accent.Render(b.frame) + " " + b.styles.Muted.Render(TypingLabel))
}
