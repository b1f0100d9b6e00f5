package impl

import (
	"context"
	"log/slog"
	"sync"

	"market/internal/domain/entity"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface. The sink
// registry is an explicit map of user ID to sink handles; persistence of the
// message record always happens before any live delivery, so a sink never
// observes a message that was not stored.
type notificationService struct {
	messageRepo repository.MessageRepository
	logger      *slog.Logger

	mu    sync.RWMutex
	sinks map[uuid.UUID][]service.NotificationSink
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	MessageRepo repository.MessageRepository
	Logger      *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		messageRepo: params.MessageRepo,
		logger:      params.Logger,
		sinks:       make(map[uuid.UUID][]service.NotificationSink),
	}
}

// Subscribe registers a live delivery sink for userID.
func (s *notificationService) Subscribe(userID uuid.UUID, sink service.NotificationSink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sinks[userID] = append(s.sinks[userID], sink)
}

// Unsubscribe removes a previously registered sink for userID.
func (s *notificationService) Unsubscribe(userID uuid.UUID, sink service.NotificationSink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	registered := s.sinks[userID]
	for i, candidate := range registered {
		if candidate == sink {
			s.sinks[userID] = append(registered[:i:i], registered[i+1:]...)

			break
		}
	}
	if len(s.sinks[userID]) == 0 {
		delete(s.sinks, userID)
	}
}

// Publish persists the message and then delivers it to every sink currently
// subscribed for the user. Delivery is synchronous and best-effort; there is
// no retry beyond the persisted record.
func (s *notificationService) Publish(ctx context.Context, userID uuid.UUID, text string) error {
	message := entity.NewMessage(userID, text)
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return errors.Wrap(err, "failed to persist message")
	}

	s.mu.RLock()
	targets := append([]service.NotificationSink(nil), s.sinks[userID]...)
	s.mu.RUnlock()

	for _, sink := range targets {
		sink.OnMessage(text)
	}

	s.logger.Debug("Published notification",
		slog.Any("userID", userID),
		slog.Int("sinks", len(targets)),
	)

	return nil
}

// Broadcast publishes the text to every currently subscribed user.
func (s *notificationService) Broadcast(ctx context.Context, text string) error {
	s.mu.RLock()
	userIDs := make([]uuid.UUID, 0, len(s.sinks))
	for userID := range s.sinks {
		userIDs = append(userIDs, userID)
	}
	s.mu.RUnlock()

	for _, userID := range userIDs {
		if err := s.Publish(ctx, userID, text); err != nil {
			return err
		}
	}

	return nil
}

// ListMessages returns the persisted messages of userID, newest first.
func (s *notificationService) ListMessages(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	messages, err := s.messageRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find messages by user")
	}

	return messages, nil
}
