package mock

import "github.com/fwojciec/chatroom"

// Interface compliance check.
var _ chatroom.Responder = (*Responder)(nil)

// Responder is a test double for chatroom.Responder.
type Responder struct {
	ReplyFn func(prompt string) string
}

// Reply delegates to ReplyFn.
func (r *Responder) Reply(prompt string) string {
	return r.ReplyFn(prompt)
}
