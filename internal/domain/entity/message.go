package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a persisted notification for a user. Persistence is the durable
// half of the notifier contract; live delivery to subscribed sinks is
// best-effort on top of it.
type Message struct {
	ID        uuid.UUID `json:"id"`         // The Global Unique Identifier (GUID) for the message.
	UserID    uuid.UUID `json:"user_id"`    // The recipient of the message.
	Content   string    `json:"content"`    // The human-readable notification text.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when the message was published.
}

// NewMessage constructs a message addressed to userID.
func NewMessage(userID uuid.UUID, content string) *Message {
	return &Message{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
