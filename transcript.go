package chatroom

import (
	"slices"
	"strings"
	"time"
)

// PlaceholderTitle is the title of a transcript whose session is unknown.
const PlaceholderTitle = "New Chat"

// Prefixes of user messages that stand for an attachment.
const (
	AttachmentPrefix = "📎 "
	ImagePrefix      = "🖼️ "
)

// TranscriptState is the state of a Transcript.
type TranscriptState int

const (
	TranscriptIdle          TranscriptState = iota // No session selected.
	TranscriptLoaded                               // Messages loaded, ready to send.
	TranscriptAwaitingReply                        // A user message waits for its reply.
)

// String returns the state name.
func (s TranscriptState) String() string {
	switch s {
	case TranscriptLoaded:
		return "loaded"
	case TranscriptAwaitingReply:
		return "awaiting_reply"
	default:
		return "idle"
	}
}

// ReplyTicket identifies one scheduled assistant reply. A ticket is only
// honored by the transcript that issued it, while it still shows the same
// session and no newer message has been sent.
type ReplyTicket struct {
	SessionID int
	Seq       uint64
	Prompt    string
}

// Transcript is an immutable state machine holding the ordered messages of
// one selected session:
//
//	Idle --LoadSession--> Loaded --SendMessage--> AwaitingReply --DeliverReply--> Loaded
//
// LoadSession is valid from any state and Close returns to Idle. Sending is
// refused while a reply is pending, so at most one reply is outstanding and
// messages are appended strictly in send/receive order.
type Transcript struct {
	state     TranscriptState
	sessionID int
	title     string
	messages  []Message
	draft     string

	pending ReplyTicket
	seq     uint64 // survives LoadSession and Close so old tickets never match
	lastID  int64

	responder Responder
	now       func() time.Time
}

// TranscriptOption configures a Transcript.
type TranscriptOption func(*Transcript)

// WithResponder sets the reply generator. Default: EchoResponder.
func WithResponder(r Responder) TranscriptOption {
	return func(t *Transcript) {
		if r != nil {
			t.responder = r
		}
	}
}

// WithTranscriptClock sets the clock used for message times and ids.
func WithTranscriptClock(now func() time.Time) TranscriptOption {
	return func(t *Transcript) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTranscript returns an Idle transcript.
func NewTranscript(opts ...TranscriptOption) Transcript {
	t := Transcript{
		responder: EchoResponder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// State returns the current state.
func (t Transcript) State() TranscriptState { return t.state }

// SessionID returns the loaded session id, 0 when Idle.
func (t Transcript) SessionID() int { return t.sessionID }

// Title returns the session title or PlaceholderTitle.
func (t Transcript) Title() string { return t.title }

// Messages returns a copy of the messages in order.
func (t Transcript) Messages() []Message { return slices.Clone(t.messages) }

// Draft returns the input buffer.
func (t Transcript) Draft() string { return t.draft }

// Pending returns the outstanding reply ticket, if any.
func (t Transcript) Pending() (ReplyTicket, bool) {
	return t.pending, t.state == TranscriptAwaitingReply
}

// LastAssistant returns the most recent assistant message.
func (t Transcript) LastAssistant() (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// SetDraft replaces the input buffer.
func (t Transcript) SetDraft(s string) Transcript {
	t.draft = s
	return t
}

// LoadSession replaces the transcript with the seeded messages of session id.
// Unknown ids load an empty transcript titled PlaceholderTitle. Any pending
// reply is abandoned.
func (t Transcript) LoadSession(store SessionStore, id int) Transcript {
	t.state = TranscriptLoaded
	t.sessionID = id
	t.title = PlaceholderTitle
	t.messages = nil
	t.draft = ""
	t.pending = ReplyTicket{}
	t.lastID = 0

	if store == nil {
		return t
	}
	if s, err := store.FindSession(id); err == nil && s.Title != "" {
		t.title = s.Title
	}
	t.messages = slices.Clone(store.SessionMessages(id))
	for _, m := range t.messages {
		t.lastID = max(t.lastID, m.ID)
	}
	return t
}

// SendMessage appends a user message and returns the ticket of its reply.
// It reports false, and changes nothing, when text is blank, no session is
// loaded, or a reply is already pending. The caller delivers the ticket back
// through DeliverReply once the reply delay has elapsed.
func (t Transcript) SendMessage(text string) (Transcript, ReplyTicket, bool) {
	text = strings.TrimSpace(text)
	if text == "" || t.state != TranscriptLoaded {
		return t, ReplyTicket{}, false
	}
	t = t.appendMessage(RoleUser, text)
	t.draft = ""
	t.seq++
	t.pending = ReplyTicket{SessionID: t.sessionID, Seq: t.seq, Prompt: text}
	t.state = TranscriptAwaitingReply
	return t, t.pending, true
}

// DeliverReply appends the assistant reply for ticket. Tickets that are not
// the pending one (another session was loaded, the chat was closed, or the
// ticket was already delivered) are dropped and reported as false.
func (t Transcript) DeliverReply(ticket ReplyTicket) (Transcript, bool) {
	if t.state != TranscriptAwaitingReply || ticket != t.pending {
		return t, false
	}
	t = t.appendMessage(RoleAssistant, t.responder.Reply(ticket.Prompt))
	t.pending = ReplyTicket{}
	t.state = TranscriptLoaded
	return t, true
}

// AttachFile appends a user message standing for an attached file. No reply
// is scheduled. Blank names, Idle and AwaitingReply are no-ops.
func (t Transcript) AttachFile(name string) Transcript {
	return t.attach(AttachmentPrefix, name)
}

// AttachImage is AttachFile for an attached image.
func (t Transcript) AttachImage(name string) Transcript {
	return t.attach(ImagePrefix, name)
}

func (t Transcript) attach(prefix, name string) Transcript {
	name = strings.TrimSpace(name)
	if name == "" || t.state != TranscriptLoaded {
		return t
	}
	return t.appendMessage(RoleUser, prefix+name)
}

// SetReaction toggles the reaction of a non-own message. Setting the current
// reaction again clears it; setting the opposite one replaces it. Unknown ids
// and own messages are left untouched.
func (t Transcript) SetReaction(id int64, kind Reaction) Transcript {
	i := slices.IndexFunc(t.messages, func(m Message) bool { return m.ID == id })
	if i < 0 || t.messages[i].IsOwn() {
		return t
	}
	msgs := slices.Clone(t.messages)
	m := &msgs[i]
	current := m.Reaction()
	m.Likes, m.Dislikes = 0, 0
	if kind != current {
		switch kind {
		case ReactionUp:
			m.Likes = 1
		case ReactionDown:
			m.Dislikes = 1
		}
	}
	t.messages = msgs
	return t
}

// Close returns the transcript to Idle. A pending reply can no longer be
// delivered.
func (t Transcript) Close() Transcript {
	t.state = TranscriptIdle
	t.sessionID = 0
	t.title = ""
	t.messages = nil
	t.draft = ""
	t.pending = ReplyTicket{}
	t.lastID = 0
	return t
}

func (t Transcript) appendMessage(role Role, text string) Transcript {
	now := t.now()
	t.lastID = nextMessageID(t.lastID, now)
	t.messages = append(slices.Clip(t.messages), Message{
		ID:   t.lastID,
		Role: role,
		Text: text,
		Time: now.Format(TimeLayout),
	})
	return t
}

// nextMessageID derives an id from the clock in milliseconds and bumps it
// past last when the clock has not advanced. Not collision-proof across
// transcripts; ids are only unique within one.
func nextMessageID(last int64, now time.Time) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
