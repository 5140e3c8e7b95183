package chatroom

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortColumn selects the single sort key of a SessionList.
type SortColumn int

const (
	SortNone SortColumn = iota
	SortTitle
	SortDate
	SortStatus
)

// String returns the column name.
func (c SortColumn) String() string {
	switch c {
	case SortTitle:
		return "title"
	case SortDate:
		return "date"
	case SortStatus:
		return "status"
	default:
		return "none"
	}
}

// SortDirection is the order applied to the active SortColumn.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// ListQuery is the ephemeral filter, sort and page state of a SessionList.
type ListQuery struct {
	Title     string
	Date      string
	Status    string
	Sort      SortColumn
	Direction SortDirection
	Page      int // 1-based
}

// SessionList is an immutable view-model over one user's sessions. Every
// mutating method returns a new SessionList and leaves the receiver intact.
//
// VisibleSessions applies filter, then sort, then pagination. Filtering is a
// conjunction of case-insensitive substring matches; sorting is a single-key
// stable sort; pagination slices the result into PageSize rows, except in
// compact mode where the whole filtered list is returned.
type SessionList struct {
	store    SessionStore
	ownerID  int
	sessions []Session

	query    ListQuery
	pageSize int
	compact  bool

	dialogOpen bool
	newTitle   string

	now func() time.Time
}

// ListOption configures a SessionList.
type ListOption func(*SessionList)

// WithPageSize sets the number of rows per page in full mode.
// Non-positive values keep DefaultPageSize.
func WithPageSize(n int) ListOption {
	return func(l *SessionList) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithClock sets the clock used to date new sessions.
func WithClock(now func() time.Time) ListOption {
	return func(l *SessionList) {
		if now != nil {
			l.now = now
		}
	}
}

// NewSessionList creates a view-model over the sessions owned by ownerID.
func NewSessionList(store SessionStore, ownerID int, opts ...ListOption) SessionList {
	l := SessionList{
		store:    store,
		ownerID:  ownerID,
		query:    ListQuery{Page: 1},
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&l)
	}
	if store != nil {
		l.sessions = slices.Clone(store.FindSessions(ownerID))
	}
	return l
}

// OwnerID returns the user whose sessions are listed.
func (l SessionList) OwnerID() int { return l.ownerID }

// Query returns the current filter, sort and page state.
func (l SessionList) Query() ListQuery { return l.query }

// PageSize returns the number of rows per page in full mode.
func (l SessionList) PageSize() int { return l.pageSize }

// Compact reports whether the list is in compact (split) mode.
func (l SessionList) Compact() bool { return l.compact }

// DialogOpen reports whether the add-session dialog is open.
func (l SessionList) DialogOpen() bool { return l.dialogOpen }

// NewTitle returns the add-session dialog input.
func (l SessionList) NewTitle() string { return l.newTitle }

// Sessions returns the unfiltered sessions of the owner.
func (l SessionList) Sessions() []Session { return slices.Clone(l.sessions) }

// SetTitleQuery sets the title filter.
func (l SessionList) SetTitleQuery(q string) SessionList {
	l.query.Title = q
	return l
}

// SetDateQuery sets the date filter.
func (l SessionList) SetDateQuery(q string) SessionList {
	l.query.Date = q
	return l
}

// SetStatusQuery sets the status filter, matched against StatusLabel.
func (l SessionList) SetStatusQuery(q string) SessionList {
	l.query.Status = q
	return l
}

// ToggleSort flips the direction when col is already the active column and
// otherwise makes col active in ascending order.
func (l SessionList) ToggleSort(col SortColumn) SessionList {
	if col == l.query.Sort {
		if l.query.Direction == Ascending {
			l.query.Direction = Descending
		} else {
			l.query.Direction = Ascending
		}
		return l
	}
	l.query.Sort = col
	l.query.Direction = Ascending
	return l
}

// ResetFilters clears all queries and the sort, and returns to page 1.
func (l SessionList) ResetFilters() SessionList {
	l.query = ListQuery{Page: 1}
	return l
}

// SetPage sets the current page. Out-of-range pages are accepted and yield
// an empty page.
func (l SessionList) SetPage(n int) SessionList {
	l.query.Page = n
	return l
}

// WithCompact switches between full (paginated) and compact mode.
func (l SessionList) WithCompact(compact bool) SessionList {
	l.compact = compact
	return l
}

// OpenAddDialog opens the add-session dialog.
func (l SessionList) OpenAddDialog() SessionList {
	l.dialogOpen = true
	return l
}

// CloseAddDialog closes the add-session dialog, keeping its input.
func (l SessionList) CloseAddDialog() SessionList {
	l.dialogOpen = false
	return l
}

// SetNewTitle sets the add-session dialog input.
func (l SessionList) SetNewTitle(s string) SessionList {
	l.newTitle = s
	return l
}

// AddSession creates a session titled title for the owner and appends it.
// A blank title, or a store failure, leaves the list unchanged. On success
// the dialog input is cleared and the dialog closed.
func (l SessionList) AddSession(title string) SessionList {
	title = strings.TrimSpace(title)
	if title == "" || l.store == nil {
		return l
	}
	s, err := l.store.CreateSession(title, l.ownerID, l.now())
	if err != nil {
		return l
	}
	l.sessions = append(slices.Clip(l.sessions), s)
	l.newTitle = ""
	l.dialogOpen = false
	return l
}

// Filtered returns the filtered and sorted sessions without pagination.
func (l SessionList) Filtered() []Session {
	title := strings.ToLower(l.query.Title)
	date := strings.ToLower(l.query.Date)
	status := strings.ToLower(l.query.Status)

	rows := make([]Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		if !strings.Contains(strings.ToLower(s.Title), title) {
			continue
		}
		if !strings.Contains(strings.ToLower(s.Date), date) {
			continue
		}
		if !strings.Contains(strings.ToLower(s.StatusLabel()), status) {
			continue
		}
		rows = append(rows, s)
	}
	sortSessions(rows, l.query.Sort, l.query.Direction)
	return rows
}

// VisibleSessions returns the rows to render for the current state.
func (l SessionList) VisibleSessions() []Session {
	rows := l.Filtered()
	if l.compact {
		return rows
	}
	start := (l.query.Page - 1) * l.pageSize
	if start < 0 || start >= len(rows) {
		return []Session{}
	}
	end := min(start+l.pageSize, len(rows))
	return rows[start:end]
}

// PageCount returns the number of pages of the filtered list, at least 1.
// Compact mode always has a single page.
func (l SessionList) PageCount() int {
	if l.compact {
		return 1
	}
	n := len(l.Filtered())
	if n == 0 {
		return 1
	}
	return (n + l.pageSize - 1) / l.pageSize
}

func sortSessions(rows []Session, col SortColumn, dir SortDirection) {
	var cmp func(a, b Session) int
	switch col {
	case SortTitle:
		c := collate.New(language.Und)
		cmp = func(a, b Session) int { return c.CompareString(a.Title, b.Title) }
	case SortDate:
		slices.SortStableFunc(rows, func(a, b Session) int { return compareDates(a.Date, b.Date, dir) })
		return
	case SortStatus:
		cmp = func(a, b Session) int { return compareBools(a.IsActive, b.IsActive) }
	default:
		return
	}
	if dir == Descending {
		asc := cmp
		cmp = func(a, b Session) int { return asc(b, a) }
	}
	slices.SortStableFunc(rows, cmp)
}

// compareDates orders valid dates chronologically in dir. Unparseable dates
// sort after every valid date in both directions and are equal to each
// other, so they keep their relative order.
func compareDates(a, b string, dir SortDirection) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if dir == Descending {
		return tb.Compare(ta)
	}
	return ta.Compare(tb)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// ParseDate parses an ISO-8601 date or RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
