package memstore

import (
	"context"
	"sort"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type messageRepository struct {
	store *Store
}

// NewMessageRepository creates a MessageRepository backed by the shared store.
func NewMessageRepository(store *Store) repository.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.messages[message.ID] = cloneMessage(message)

	return nil
}

func (r *messageRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Message
	for _, message := range r.store.messages {
		if message.UserID == userID {
			matched = append(matched, cloneMessage(message))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}
