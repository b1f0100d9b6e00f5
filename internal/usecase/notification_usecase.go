package usecase

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/domain/service"

	"github.com/google/uuid"
)

// NotificationUsecase is the notifier: publishing always persists a message
// for the user, and additionally delivers to every currently subscribed sink
// synchronously. Live delivery is best-effort; the persisted messages are
// the durable record.
type NotificationUsecase interface {
	// Subscribe registers a live delivery sink for userID.
	Subscribe(userID uuid.UUID, sink service.NotificationSink)

	// Unsubscribe removes a previously registered sink for userID.
	Unsubscribe(userID uuid.UUID, sink service.NotificationSink)

	// Publish persists a message for userID and delivers it to the user's
	// subscribed sinks.
	Publish(ctx context.Context, userID uuid.UUID, text string) error

	// Broadcast publishes the text to every currently subscribed user.
	Broadcast(ctx context.Context, text string) error

	// ListMessages returns the persisted messages of userID, newest first.
	ListMessages(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
}
