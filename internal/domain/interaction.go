package domain

import "time"

// InteractionAction is a recorded decision one user made about another.
type InteractionAction string

const (
	ActionSelected InteractionAction = "selected"
	ActionAccepted InteractionAction = "accepted"
	ActionRejected InteractionAction = "rejected"
)

func (a InteractionAction) Valid() bool {
	switch a {
	case ActionSelected, ActionAccepted, ActionRejected:
		return true
	}
	return false
}

// Interaction is the single live record for a (viewer, candidate) pair.
// Re-selecting updates the row in place rather than duplicating it.
type Interaction struct {
	ID           int               `json:"id" db:"id"`
	UserID       int               `json:"user_id" db:"user_id"`
	TargetUserID int               `json:"target_user_id" db:"target_user_id"`
	Action       InteractionAction `json:"action" db:"action"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}
