package chatroom

// TimeLayout renders a message send time as HH:MM.
const TimeLayout = "15:04"

// Reaction is the reaction state of a message.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionUp
	ReactionDown
)

// String returns "none", "up" or "down".
func (r Reaction) String() string {
	switch r {
	case ReactionUp:
		return "up"
	case ReactionDown:
		return "down"
	default:
		return "none"
	}
}

// Message is a single entry in a chat transcript.
//
// Likes and Dislikes are mutually exclusive: at most one of them is non-zero.
type Message struct {
	ID       int64
	Role     Role
	Text     string
	Time     string // send time, see TimeLayout
	Likes    int
	Dislikes int
}

// IsOwn reports whether the message was sent by the user.
func (m Message) IsOwn() bool { return m.Role == RoleUser }

// Reaction derives the reaction state from the counters.
func (m Message) Reaction() Reaction {
	switch {
	case m.Likes > 0:
		return ReactionUp
	case m.Dislikes > 0:
		return ReactionDown
	default:
		return ReactionNone
	}
}
