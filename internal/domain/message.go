package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation log. Messages are never mutated
// after creation.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewMessage creates a message with a fresh ID stamped at the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Speaker returns the transcript label for the message's role.
func (m Message) Speaker() string {
	if m.Role == RoleUser {
		return "Student"
	}
	return "Historical Figure"
}
