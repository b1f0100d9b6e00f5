package memstore

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	store *Store
}

// NewProductRepository creates a ProductRepository backed by the shared store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return cloneProduct(product), nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.store.products[product.ID] = cloneProduct(product)

	return nil
}

func (r *productRepository) Filter(ctx context.Context, pred func(*entity.Product) bool) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Product
	for _, product := range r.store.products {
		if pred(product) {
			matched = append(matched, cloneProduct(product))
		}
	}

	return matched, nil
}
