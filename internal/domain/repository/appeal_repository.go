package repository

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/errors"

	"github.com/google/uuid"
)

// ErrAppealNotFound is returned when an appeal lookup finds nothing.
var ErrAppealNotFound = errors.New("appeal not found")

// AppealRepository manages ban appeal records.
type AppealRepository interface {
	// Create persists a new appeal.
	Create(ctx context.Context, appeal *entity.Appeal) error

	// FindByID retrieves an appeal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appeal, error)

	// Update persists changes to an existing appeal.
	Update(ctx context.Context, appeal *entity.Appeal) error

	// Filter returns all appeals matching the predicate.
	Filter(ctx context.Context, pred func(*entity.Appeal) bool) ([]*entity.Appeal, error)
}
