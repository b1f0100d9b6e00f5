package memstore

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type appealRepository struct {
	store *Store
}

// NewAppealRepository creates an AppealRepository backed by the shared store.
func NewAppealRepository(store *Store) repository.AppealRepository {
	return &appealRepository{store: store}
}

func (r *appealRepository) Create(ctx context.Context, appeal *entity.Appeal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.appeals[appeal.ID] = cloneAppeal(appeal)

	return nil
}

func (r *appealRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appeal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	appeal, ok := r.store.appeals[id]
	if !ok {
		return nil, repository.ErrAppealNotFound
	}

	return cloneAppeal(appeal), nil
}

func (r *appealRepository) Update(ctx context.Context, appeal *entity.Appeal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.appeals[appeal.ID]; !ok {
		return repository.ErrAppealNotFound
	}
	r.store.appeals[appeal.ID] = cloneAppeal(appeal)

	return nil
}

func (r *appealRepository) Filter(ctx context.Context, pred func(*entity.Appeal) bool) ([]*entity.Appeal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Appeal
	for _, appeal := range r.store.appeals {
		if pred(appeal) {
			matched = append(matched, cloneAppeal(appeal))
		}
	}

	return matched, nil
}
