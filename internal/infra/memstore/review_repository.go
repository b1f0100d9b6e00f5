package memstore

import (
	"context"
	"sort"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository creates a ReviewRepository backed by the shared store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.reviews[review.ID] = cloneReview(review)

	return nil
}

func (r *reviewRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, review := range r.store.reviews {
		if review.OrderID == orderID {
			return cloneReview(review), nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *reviewRepository) FindByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]*entity.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Review
	for _, review := range r.store.reviews {
		if review.RevieweeID == revieweeID {
			matched = append(matched, cloneReview(review))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}
