package chatroom_test

import (
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/chatroom"
	"github.com/fwojciec/chatroom/mock"
)

// newStore returns a mock.SessionStore backed by an in-memory dataset shared
// by every owner, so CreateSession sees ids of all users.
func newStore(sessions []chatroom.Session, messages map[int][]chatroom.Message) *mock.SessionStore {
	var mu sync.Mutex
	all := slices.Clone(sessions)
	return &mock.SessionStore{
		FindSessionsFn: func(ownerID int) []chatroom.Session {
			mu.Lock()
			defer mu.Unlock()
			var out []chatroom.Session
			for _, s := range all {
				if s.OwnerID == ownerID {
					out = append(out, s)
				}
			}
			return out
		},
		FindSessionFn: func(id int) (chatroom.Session, error) {
			mu.Lock()
			defer mu.Unlock()
			for _, s := range all {
				if s.ID == id {
					return s, nil
				}
			}
			return chatroom.Session{}, chatroom.ErrNotFound
		},
		SessionMessagesFn: func(id int) []chatroom.Message {
			return messages[id]
		},
		CreateSessionFn: func(title string, ownerID int, created time.Time) (chatroom.Session, error) {
			mu.Lock()
			defer mu.Unlock()
			next := 1
			for _, s := range all {
				next = max(next, s.ID+1)
			}
			s := chatroom.Session{
				ID:       next,
				Title:    title,
				Date:     created.Format(chatroom.DateLayout),
				IsActive: true,
				OwnerID:  ownerID,
			}
			all = append(all, s)
			return s, nil
		},
	}
}

func fixtureSessions() []chatroom.Session {
	return []chatroom.Session{
		{ID: 1, Title: "Project kickoff", Date: "2025-01-10", IsActive: true, OwnerID: 1},
		{ID: 2, Title: "budget review", Date: "2025-01-03", IsActive: false, OwnerID: 1},
		{ID: 3, Title: "Hiring plan", Date: "not a date", IsActive: true, OwnerID: 1},
		{ID: 4, Title: "Another user's chat", Date: "2025-02-01", IsActive: true, OwnerID: 2},
		{ID: 5, Title: "Kickoff retro", Date: "2025-01-20", IsActive: false, OwnerID: 1},
		{ID: 6, Title: "Design sync", Date: "2024-12-31", IsActive: true, OwnerID: 1},
		{ID: 7, Title: "Launch checklist", Date: "2025-03-02", IsActive: true, OwnerID: 1},
		{ID: 12, Title: "Top secret", Date: "2025-03-05", IsActive: false, OwnerID: 3},
	}
}

func fixedClock() time.Time {
	return time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
}

func ids(sessions []chatroom.Session) []int {
	out := make([]int, len(sessions))
	for i, s := range sessions {
		out[i] = s.ID
	}
	return out
}
