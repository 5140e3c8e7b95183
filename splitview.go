package chatroom

// SplitView couples a SessionList with the Transcript of the selected
// session. Selecting a session compacts the list and loads the transcript;
// closing the chat restores the full list and returns the transcript to Idle.
type SplitView struct {
	list       SessionList
	transcript Transcript
	selected   Session
	hasSel     bool
}

// NewSplitView creates a SplitView with nothing selected.
func NewSplitView(list SessionList, transcript Transcript) SplitView {
	return SplitView{
		list:       list.WithCompact(false),
		transcript: transcript.Close(),
	}
}

// List returns the session list.
func (v SplitView) List() SessionList { return v.list }

// Transcript returns the transcript.
func (v SplitView) Transcript() Transcript { return v.transcript }

// Selected returns the selected session.
func (v SplitView) Selected() (Session, bool) { return v.selected, v.hasSel }

// Compact reports whether the list is in compact layout.
func (v SplitView) Compact() bool { return v.list.Compact() }

// WithList replaces the session list, keeping the current layout mode.
func (v SplitView) WithList(l SessionList) SplitView {
	v.list = l.WithCompact(v.hasSel)
	return v
}

// WithTranscript replaces the transcript.
func (v SplitView) WithTranscript(t Transcript) SplitView {
	v.transcript = t
	return v
}

// SelectSession selects s, switches the list to compact layout and loads
// the transcript of s.
func (v SplitView) SelectSession(s Session) SplitView {
	v.selected = s
	v.hasSel = true
	v.list = v.list.WithCompact(true)
	v.transcript = v.transcript.LoadSession(v.list.store, s.ID)
	return v
}

// CloseChat clears the selection, restores the full layout and returns the
// transcript to Idle, discarding any pending reply.
func (v SplitView) CloseChat() SplitView {
	v.selected = Session{}
	v.hasSel = false
	v.list = v.list.WithCompact(false)
	v.transcript = v.transcript.Close()
	return v
}
