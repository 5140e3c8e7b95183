// Package json decodes the chat fixtures into an in-memory Dataset and
// remembers the signed-in user as a JSON record in a key-value store.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/chatroom"
)

// Fixture file names inside a data directory.
const (
	SessionsFile = "aiChatData.json"
	UsersFile    = "users.json"
)

// chatDataDTO is the wire format of aiChatData.json.
type chatDataDTO struct {
	Sessions []sessionDTO `json:"sessions"`
}

// sessionDTO is one fixture session. The owner is read from userId, or from
// ownerId in newer fixtures.
type sessionDTO struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Date     string       `json:"date,omitempty"`
	IsActive *bool        `json:"isActive,omitempty"`
	UserID   *int         `json:"userId,omitempty"`
	OwnerID  *int         `json:"ownerId,omitempty"`
	Messages []messageDTO `json:"messages"`
}

type messageDTO struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	Text     string `json:"text"`
	Time     string `json:"time"`
	Likes    int    `json:"likes,omitempty"`
	Dislikes int    `json:"dislikes,omitempty"`
}

// usersDTO is the wire format of users.json.
type usersDTO struct {
	Users []userDTO `json:"users"`
}

type userDTO struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
}

// Load reads both fixtures from dir. today dates sessions without a date.
func Load(dir string, today time.Time) (*Dataset, error) {
	sessions, err := os.ReadFile(filepath.Join(dir, SessionsFile))
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	users, err := os.ReadFile(filepath.Join(dir, UsersFile))
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return Decode(sessions, users, today)
}

// Decode builds a Dataset from the raw fixture contents.
func Decode(sessionsData, usersData []byte, today time.Time) (*Dataset, error) {
	var chat chatDataDTO
	if err := json.Unmarshal(sessionsData, &chat); err != nil {
		return nil, fmt.Errorf("unmarshal sessions: %w", err)
	}
	var users usersDTO
	if err := json.Unmarshal(usersData, &users); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}

	d := &Dataset{messages: make(map[int][]chatroom.Message, len(chat.Sessions))}
	for i, dto := range chat.Sessions {
		s, err := unmarshalSession(dto, today)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		msgs := make([]chatroom.Message, len(dto.Messages))
		for j, m := range dto.Messages {
			msg, err := unmarshalMessage(m)
			if err != nil {
				return nil, fmt.Errorf("session %d message %d: %w", s.ID, j, err)
			}
			msgs[j] = msg
		}
		d.sessions = append(d.sessions, s)
		d.messages[s.ID] = msgs
	}
	for i, u := range users.Users {
		id := u.ID
		if id == 0 {
			id = i + 1
		}
		d.users = append(d.users, chatroom.User{
			ID:       id,
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
		})
	}
	return d, nil
}

func unmarshalSession(dto sessionDTO, today time.Time) (chatroom.Session, error) {
	if dto.ID <= 0 {
		return chatroom.Session{}, fmt.Errorf("invalid id %d: %w", dto.ID, chatroom.ErrValidation)
	}
	s := chatroom.Session{
		ID:       dto.ID,
		Title:    dto.Name,
		Date:     dto.Date,
		IsActive: true,
	}
	if s.Date == "" {
		s.Date = today.Format(chatroom.DateLayout)
	}
	if dto.IsActive != nil {
		s.IsActive = *dto.IsActive
	}
	switch {
	case dto.OwnerID != nil:
		s.OwnerID = *dto.OwnerID
	case dto.UserID != nil:
		s.OwnerID = *dto.UserID
	}
	return s, nil
}

func unmarshalMessage(dto messageDTO) (chatroom.Message, error) {
	role := chatroom.Role(dto.Role)
	switch role {
	case chatroom.RoleUser, chatroom.RoleAssistant:
	default:
		return chatroom.Message{}, fmt.Errorf("unknown role %q: %w", dto.Role, chatroom.ErrValidation)
	}
	return chatroom.Message{
		ID:       dto.ID,
		Role:     role,
		Text:     dto.Text,
		Time:     dto.Time,
		Likes:    min(max(dto.Likes, 0), 1),
		Dislikes: min(max(dto.Dislikes, 0), 1),
	}, nil
}
