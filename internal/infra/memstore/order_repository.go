package memstore

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository creates an OrderRepository backed by the shared store.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(order), nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	r.store.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *orderRepository) Filter(ctx context.Context, pred func(*entity.Order) bool) ([]*entity.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Order
	for _, order := range r.store.orders {
		if pred(order) {
			matched = append(matched, cloneOrder(order))
		}
	}

	return matched, nil
}
