package chatroom

// Responder produces the simulated assistant reply for a user prompt.
type Responder interface {
	Reply(prompt string) string
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(prompt string) string

// Reply calls f(prompt).
func (f ResponderFunc) Reply(prompt string) string { return f(prompt) }

// EchoReplyPrefix prefixes every EchoResponder reply.
const EchoReplyPrefix = "I am a simulated AI. I received your message: "

// EchoResponder is the deterministic default Responder.
type EchoResponder struct{}

// Reply echoes the prompt after EchoReplyPrefix.
func (EchoResponder) Reply(prompt string) string {
	return EchoReplyPrefix + prompt
}

// Interface compliance checks.
var (
	_ Responder = EchoResponder{}
	_ Responder = ResponderFunc(nil)
)
