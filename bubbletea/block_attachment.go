package bubbletea

import (
	"strings"

	"github.com/fwojciec/chatroom"
)

var _ MessageBlock = (*AttachmentBlock)(nil)

// AttachmentBlock renders an attached file or image as a small card on the
// user side.
type AttachmentBlock struct {
	icon   string
	name   string
	at     string
	styles Styles
}

// NewAttachmentBlock creates an AttachmentBlock from an attachment message.
func NewAttachmentBlock(msg chatroom.Message, styles Styles) *AttachmentBlock {
	icon, name := chatroom.AttachmentPrefix, strings.TrimPrefix(msg.Text, chatroom.AttachmentPrefix)
	if rest, ok := strings.CutPrefix(msg.Text, chatroom.ImagePrefix); ok {
		icon, name = chatroom.ImagePrefix, rest
	}
	return &AttachmentBlock{
		icon:   icon,
		name:   name,
		at:     msg.Time,
		styles: styles,
	}
}

// Name returns the attached file name.
func (b *AttachmentBlock) Name() string { return b.name }

// IsImage reports whether the attachment is an image.
func (b *AttachmentBlock) IsImage() bool { return b.icon == chatroom.ImagePrefix }

func (b *AttachmentBlock) View(width int) string {
	card := b.styles.Attachment.Render(b.icon + truncate(b.name, max(bubbleWidth(width)-7, 4)))
	return alignRight(width, header(UserName, b.at, b.styles)) + "\n" + alignRight(width, card)
}
