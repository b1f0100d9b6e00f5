package memstore

import (
	"context"
	"time"

	"market/internal/domain/entity"
	"market/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

// NewUserRepository creates a UserRepository backed by the shared store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.users[user.ID] = cloneUser(user)

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.store.users[user.ID] = cloneUser(user)

	return nil
}

// AdjustReputation mutates the stored user directly under the store lock, so
// concurrent deltas from different flows (completion, cancellation, review)
// serialize and the clamping law holds for any interleaving.
func (r *userRepository) AdjustReputation(ctx context.Context, id uuid.UUID, delta int) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	user.AdjustReputation(delta)

	return cloneUser(user), nil
}

// SetStatus mutates the stored user directly under the store lock. Status
// flips and reputation deltas on the same user therefore never lose each
// other, regardless of which flow runs them.
func (r *userRepository) SetStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if user.Status != status {
		user.Status = status
		user.UpdatedAt = time.Now()
	}

	return cloneUser(user), nil
}

// AddRole mutates the stored user directly under the store lock.
func (r *userRepository) AddRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if !user.Roles.Contains(role) {
		user.Roles = append(user.Roles, role)
		user.UpdatedAt = time.Now()
	}

	return cloneUser(user), nil
}
