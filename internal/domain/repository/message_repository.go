package repository

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// MessageRepository manages persisted notification messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *entity.Message) error

	// FindByUser retrieves all messages addressed to the given user,
	// newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
}
