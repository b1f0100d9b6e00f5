package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// SubmitAppealInput carries a banned user's reinstatement request.
type SubmitAppealInput struct {
	Content string `json:"content" validate:"required,min=10,max=2000"`
}

// ResolveAppealInput carries an admin ruling on an appeal.
type ResolveAppealInput struct {
	Accepted bool   `json:"accepted"`
	Note     string `json:"note" validate:"max=1000"`
}

// AdminUsecase covers moderation: bans, unbans and the appeal workflow.
// Bans only change account status; the transaction core independently
// refuses banned accounts.
type AdminUsecase interface {
	// BanUser sets the target account to banned status.
	BanUser(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error)

	// UnbanUser restores a banned account to active status.
	UnbanUser(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error)

	// SubmitAppeal files a reinstatement request for a banned account.
	SubmitAppeal(ctx context.Context, userID uuid.UUID, input *SubmitAppealInput) (*entity.Appeal, error)

	// ListPendingAppeals returns all unresolved appeals.
	ListPendingAppeals(ctx context.Context, adminID uuid.UUID) ([]*entity.Appeal, error)

	// ResolveAppeal records an admin ruling; accepting lifts the ban.
	ResolveAppeal(ctx context.Context, adminID, appealID uuid.UUID, input *ResolveAppealInput) (*entity.Appeal, error)
}
