package repository

import (
	"context"

	"github.com/takeyours/takeyours-backend/internal/domain"
)

type InteractionRepository interface {
	// Upsert creates the (user, target) record or updates its action in
	// place; at most one live record exists per pair.
	Upsert(ctx context.Context, userID, targetUserID int, action domain.InteractionAction) error
	// UpdateAction mutates an existing record and returns
	// domain.ErrInteractionNotFound when the pair has none.
	UpdateAction(ctx context.Context, userID, targetUserID int, action domain.InteractionAction) error
	Get(ctx context.Context, userID, targetUserID int) (*domain.Interaction, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.Interaction, error)
	ListByUserAndAction(ctx context.Context, userID int, action domain.InteractionAction) ([]*domain.Interaction, error)
}
