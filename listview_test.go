package chatroom_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/chatroom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newList(opts ...chatroom.ListOption) chatroom.SessionList {
	return chatroom.NewSessionList(newStore(fixtureSessions(), nil), 1, opts...)
}

func TestNewSessionList(t *testing.T) {
	t.Parallel()

	l := newList()

	assert.Equal(t, 1, l.OwnerID())
	assert.Equal(t, chatroom.DefaultPageSize, l.PageSize())
	assert.Equal(t, chatroom.ListQuery{Page: 1}, l.Query())
	assert.False(t, l.Compact())
	assert.False(t, l.DialogOpen())
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, ids(l.Sessions()))
}

func TestSessionList_Filter(t *testing.T) {
	t.Parallel()

	t.Run("title query is a case-insensitive substring match", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).SetTitleQuery("KICKOFF")

		got := l.VisibleSessions()

		for _, s := range got {
			assert.Contains(t, strings.ToLower(s.Title), "kickoff")
		}
		assert.Equal(t, []int{1, 5}, ids(got))
	})

	t.Run("title query finds every matching session of the owner", func(t *testing.T) {
		t.Parallel()
		for _, q := range []string{"", "a", "re", "n", "zzz", " "} {
			l := newList().WithCompact(true).SetTitleQuery(q)
			var want []int
			for _, s := range l.Sessions() {
				if strings.Contains(strings.ToLower(s.Title), strings.ToLower(q)) {
					want = append(want, s.ID)
				}
			}
			got := ids(l.VisibleSessions())
			if want == nil {
				want = []int{}
			}
			assert.Equal(t, want, got, "query %q", q)
		}
	})

	t.Run("date query matches the ISO date", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).SetDateQuery("2025-01")
		assert.Equal(t, []int{1, 2, 5}, ids(l.VisibleSessions()))
	})

	t.Run("status query matches the label", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).SetStatusQuery("inactive")
		assert.Equal(t, []int{2, 5}, ids(l.VisibleSessions()))

		// "active" is a substring of "Inactive" too.
		l = l.SetStatusQuery("active")
		assert.Len(t, l.VisibleSessions(), 6)
	})

	t.Run("queries combine as a conjunction", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).SetTitleQuery("kickoff").SetStatusQuery("Inact")
		assert.Equal(t, []int{5}, ids(l.VisibleSessions()))
	})

	t.Run("other owners' sessions are never visible", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).SetTitleQuery("user")
		assert.Empty(t, l.VisibleSessions())
	})

	t.Run("receiver is left unchanged", func(t *testing.T) {
		t.Parallel()
		l := newList()
		_ = l.SetTitleQuery("kickoff")
		assert.Empty(t, l.Query().Title)
	})
}

func TestSessionList_ToggleSort(t *testing.T) {
	t.Parallel()

	t.Run("new column starts ascending", func(t *testing.T) {
		t.Parallel()
		l := newList().ToggleSort(chatroom.SortTitle)
		assert.Equal(t, chatroom.SortTitle, l.Query().Sort)
		assert.Equal(t, chatroom.Ascending, l.Query().Direction)
	})

	t.Run("same column flips direction and twice returns to ascending", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).ToggleSort(chatroom.SortTitle)
		asc := ids(l.VisibleSessions())

		l = l.ToggleSort(chatroom.SortTitle)
		assert.Equal(t, chatroom.Descending, l.Query().Direction)

		l = l.ToggleSort(chatroom.SortTitle).ToggleSort(chatroom.SortTitle)
		assert.Equal(t, chatroom.Descending, l.Query().Direction)
		l = l.ToggleSort(chatroom.SortTitle)
		assert.Equal(t, chatroom.Ascending, l.Query().Direction)
		assert.Equal(t, asc, ids(l.VisibleSessions()))
	})

	t.Run("switching column resets to ascending", func(t *testing.T) {
		t.Parallel()
		l := newList().ToggleSort(chatroom.SortTitle).ToggleSort(chatroom.SortTitle).ToggleSort(chatroom.SortDate)
		assert.Equal(t, chatroom.SortDate, l.Query().Sort)
		assert.Equal(t, chatroom.Ascending, l.Query().Direction)
	})

	t.Run("title sorts with locale collation", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).ToggleSort(chatroom.SortTitle)
		titles := titlesOf(l.VisibleSessions())
		assert.Equal(t, []string{
			"budget review",
			"Design sync",
			"Hiring plan",
			"Kickoff retro",
			"Launch checklist",
			"Project kickoff",
		}, titles)

		l = l.ToggleSort(chatroom.SortTitle)
		assert.Equal(t, "Project kickoff", l.VisibleSessions()[0].Title)
	})

	t.Run("status sorts inactive before active when ascending", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).ToggleSort(chatroom.SortStatus)
		got := l.VisibleSessions()
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i-1].IsActive && !got[i].IsActive, "not non-decreasing at %d", i)
		}
		// Stable: equal keys keep dataset order.
		assert.Equal(t, []int{2, 5, 1, 3, 6, 7}, ids(got))

		l = l.ToggleSort(chatroom.SortStatus)
		assert.Equal(t, []int{1, 3, 6, 7, 2, 5}, ids(l.VisibleSessions()))
	})

	t.Run("unparseable dates sort last in both directions", func(t *testing.T) {
		t.Parallel()
		l := newList().WithCompact(true).ToggleSort(chatroom.SortDate)
		var got []chatroom.Session
		require.NotPanics(t, func() { got = l.VisibleSessions() })
		assert.Equal(t, []int{6, 2, 1, 5, 7, 3}, ids(got))
		assertDatesOrdered(t, got, chatroom.Ascending)

		got = l.ToggleSort(chatroom.SortDate).VisibleSessions()
		assert.Equal(t, []int{7, 5, 1, 2, 6, 3}, ids(got))
		assertDatesOrdered(t, got, chatroom.Descending)
	})

	t.Run("unparseable date between valid dates", func(t *testing.T) {
		t.Parallel()
		sessions := []chatroom.Session{
			{ID: 1, Title: "a", Date: "2024-03-01", OwnerID: 1},
			{ID: 2, Title: "b", Date: "not-a-date", OwnerID: 1},
			{ID: 3, Title: "c", Date: "2024-01-01", OwnerID: 1},
			{ID: 4, Title: "d", Date: "", OwnerID: 1},
		}
		l := chatroom.NewSessionList(newStore(sessions, nil), 1).WithCompact(true).ToggleSort(chatroom.SortDate)
		assert.Equal(t, []int{3, 1, 2, 4}, ids(l.VisibleSessions()))

		l = l.ToggleSort(chatroom.SortDate)
		assert.Equal(t, []int{1, 3, 2, 4}, ids(l.VisibleSessions()))
	})

	t.Run("date sort is chronological for valid dates", func(t *testing.T) {
		t.Parallel()
		sessions := []chatroom.Session{
			{ID: 1, Title: "c", Date: "2025-03-01", OwnerID: 1},
			{ID: 2, Title: "a", Date: "2024-12-31", OwnerID: 1},
			{ID: 3, Title: "b", Date: "2025-01-15", OwnerID: 1},
		}
		l := chatroom.NewSessionList(newStore(sessions, nil), 1).ToggleSort(chatroom.SortDate)
		assert.Equal(t, []int{2, 3, 1}, ids(l.VisibleSessions()))

		l = l.ToggleSort(chatroom.SortDate)
		assert.Equal(t, []int{1, 3, 2}, ids(l.VisibleSessions()))
	})
}

func TestSessionList_ResetFilters(t *testing.T) {
	t.Parallel()

	l := newList().
		SetTitleQuery("k").
		SetDateQuery("2025").
		SetStatusQuery("Active").
		ToggleSort(chatroom.SortDate).
		SetPage(3)
	before := l.Sessions()

	l = l.ResetFilters()

	assert.Equal(t, chatroom.ListQuery{Page: 1}, l.Query())
	assert.Equal(t, before, l.Sessions())
	assert.Equal(t, []int{1, 2, 3, 5, 6}, ids(l.VisibleSessions()))
}

func TestSessionList_Pagination(t *testing.T) {
	t.Parallel()

	t.Run("full mode slices pages of five", func(t *testing.T) {
		t.Parallel()
		l := newList()
		assert.Equal(t, 2, l.PageCount())
		assert.Equal(t, []int{1, 2, 3, 5, 6}, ids(l.VisibleSessions()))
		assert.Equal(t, []int{7}, ids(l.SetPage(2).VisibleSessions()))
	})

	t.Run("out-of-range page yields an empty slice", func(t *testing.T) {
		t.Parallel()
		l := newList()
		assert.Empty(t, l.SetPage(3).VisibleSessions())
		assert.Empty(t, l.SetPage(0).VisibleSessions())
		assert.Empty(t, l.SetPage(-2).VisibleSessions())
	})

	t.Run("compact mode shows the whole filtered list", func(t *testing.T) {
		t.Parallel()
		l := newList().SetPage(2).WithCompact(true)
		assert.Len(t, l.VisibleSessions(), 6)
		assert.Equal(t, 1, l.PageCount())
	})

	t.Run("custom page size", func(t *testing.T) {
		t.Parallel()
		l := newList(chatroom.WithPageSize(4))
		assert.Equal(t, 2, l.PageCount())
		assert.Len(t, l.SetPage(2).VisibleSessions(), 2)
	})

	t.Run("empty result has one page", func(t *testing.T) {
		t.Parallel()
		l := newList().SetTitleQuery("nothing matches this")
		assert.Equal(t, 1, l.PageCount())
		assert.Empty(t, l.VisibleSessions())
	})
}

func TestSessionList_VisibleSessionsIsIdempotent(t *testing.T) {
	t.Parallel()
	l := newList().WithCompact(true).ToggleSort(chatroom.SortDate).SetTitleQuery("i")
	assert.Equal(t, l.VisibleSessions(), l.VisibleSessions())
}

func TestSessionList_AddSession(t *testing.T) {
	t.Parallel()

	t.Run("blank title is a no-op", func(t *testing.T) {
		t.Parallel()
		for _, title := range []string{"", "   ", "\t\n"} {
			l := newList().OpenAddDialog().SetNewTitle(title)
			got := l.AddSession(title)
			assert.Equal(t, l.Sessions(), got.Sessions())
			assert.True(t, got.DialogOpen())
		}
	})

	t.Run("id is greater than every id in the full dataset", func(t *testing.T) {
		t.Parallel()
		l := chatroom.NewSessionList(newStore(fixtureSessions(), nil), 1,
			chatroom.WithClock(fixedClock))
		before := l.Sessions()

		l = l.OpenAddDialog().SetNewTitle("Foo").AddSession("Foo")

		after := l.Sessions()
		require.Len(t, after, len(before)+1)
		created := after[len(after)-1]
		for _, s := range fixtureSessions() {
			assert.Greater(t, created.ID, s.ID)
		}
		assert.Equal(t, 13, created.ID)
		assert.Equal(t, "Foo", created.Title)
		assert.Equal(t, "2025-04-01", created.Date)
		assert.True(t, created.IsActive)
		assert.Equal(t, 1, created.OwnerID)
		assert.Empty(t, l.NewTitle())
		assert.False(t, l.DialogOpen())
	})

	t.Run("title is trimmed", func(t *testing.T) {
		t.Parallel()
		l := newList().AddSession("  Foo  ")
		s := l.Sessions()
		assert.Equal(t, "Foo", s[len(s)-1].Title)
	})

	t.Run("store failure leaves the list unchanged", func(t *testing.T) {
		t.Parallel()
		store := newStore(fixtureSessions(), nil)
		store.CreateSessionFn = func(string, int, time.Time) (chatroom.Session, error) {
			return chatroom.Session{}, errors.New("boom")
		}
		l := chatroom.NewSessionList(store, 1).OpenAddDialog()
		got := l.AddSession("Foo")
		assert.Equal(t, l.Sessions(), got.Sessions())
		assert.True(t, got.DialogOpen())
	})

	t.Run("earlier snapshots do not see the new session", func(t *testing.T) {
		t.Parallel()
		l := newList()
		_ = l.AddSession("Foo")
		assert.Len(t, l.Sessions(), 6)
	})

	t.Run("nil store", func(t *testing.T) {
		t.Parallel()
		l := chatroom.NewSessionList(nil, 1)
		assert.Empty(t, l.AddSession("Foo").Sessions())
	})
}

func TestSessionList_Dialog(t *testing.T) {
	t.Parallel()
	l := newList().OpenAddDialog().SetNewTitle("draft")
	assert.True(t, l.DialogOpen())

	l = l.CloseAddDialog()
	assert.False(t, l.DialogOpen())
	assert.Equal(t, "draft", l.NewTitle())
}

func TestSortColumn_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		col  chatroom.SortColumn
		want string
	}{
		{chatroom.SortNone, "none"},
		{chatroom.SortTitle, "title"},
		{chatroom.SortDate, "date"},
		{chatroom.SortStatus, "status"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.col.String())
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	_, ok := chatroom.ParseDate("2025-01-02")
	assert.True(t, ok)
	_, ok = chatroom.ParseDate("2025-01-02T10:00:00Z")
	assert.True(t, ok)
	_, ok = chatroom.ParseDate("1/2/2025")
	assert.False(t, ok)
	_, ok = chatroom.ParseDate("")
	assert.False(t, ok)
}

func titlesOf(sessions []chatroom.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.Title
	}
	return out
}

// assertDatesOrdered checks that parseable dates are in dir order and that
// no parseable date follows an unparseable one.
func assertDatesOrdered(t *testing.T, rows []chatroom.Session, dir chatroom.SortDirection) {
	t.Helper()
	var prev time.Time
	seenValid, seenInvalid := false, false
	for i, s := range rows {
		d, ok := chatroom.ParseDate(s.Date)
		if !ok {
			seenInvalid = true
			continue
		}
		assert.False(t, seenInvalid, "valid date after an unparseable one at %d", i)
		if seenValid {
			if dir == chatroom.Ascending {
				assert.False(t, d.Before(prev), "not non-decreasing at %d", i)
			} else {
				assert.False(t, d.After(prev), "not non-increasing at %d", i)
			}
		}
		prev, seenValid = d, true
	}
}
