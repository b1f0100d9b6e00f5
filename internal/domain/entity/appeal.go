package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppealStatus represents the handling state of a ban appeal.
type AppealStatus string

const (
	// AppealStatusPending means no admin has ruled on the appeal yet.
	AppealStatusPending AppealStatus = "pending"
	// AppealStatusAccepted means the ban was lifted.
	AppealStatusAccepted AppealStatus = "accepted"
	// AppealStatusRejected means the ban stands.
	AppealStatusRejected AppealStatus = "rejected"
)

// Appeal is a banned user's request to have their account reinstated.
type Appeal struct {
	ID             uuid.UUID    `json:"id"`                        // The Global Unique Identifier (GUID) for the appeal.
	UserID         uuid.UUID    `json:"user_id"`                   // The banned user who filed the appeal.
	Content        string       `json:"content"`                   // The user's statement.
	Status         AppealStatus `json:"status"`                    // Current handling state.
	ResolvedBy     *uuid.UUID   `json:"resolved_by,omitempty"`     // The admin who ruled, once resolved.
	ResolutionNote string       `json:"resolution_note,omitempty"` // The admin's note, once resolved.
	CreatedAt      time.Time    `json:"created_at"`                // Timestamp of when the appeal was filed.
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`     // Timestamp of the ruling, once resolved.
}

// NewAppeal constructs a pending appeal filed by userID.
func NewAppeal(userID uuid.UUID, content string) *Appeal {
	return &Appeal{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		Status:    AppealStatusPending,
		CreatedAt: time.Now(),
	}
}

// Resolve records an admin's ruling on a pending appeal.
func (a *Appeal) Resolve(adminID uuid.UUID, accepted bool, note string) {
	if accepted {
		a.Status = AppealStatusAccepted
	} else {
		a.Status = AppealStatusRejected
	}
	a.ResolvedBy = &adminID
	a.ResolutionNote = note
	now := time.Now()
	a.ResolvedAt = &now
}
