package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/repository"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Upsert(ctx context.Context, userID, targetUserID int, action domain.InteractionAction) error {
	query := `
		INSERT INTO user_interactions (user_id, target_user_id, action)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, target_user_id)
		DO UPDATE SET action = EXCLUDED.action, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, userID, targetUserID, action)
	return err
}

func (r *interactionRepository) UpdateAction(ctx context.Context, userID, targetUserID int, action domain.InteractionAction) error {
	query := `
		UPDATE user_interactions
		SET action = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2 AND target_user_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, action, userID, targetUserID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInteractionNotFound
	}
	return nil
}

func (r *interactionRepository) Get(ctx context.Context, userID, targetUserID int) (*domain.Interaction, error) {
	var interaction domain.Interaction
	query := `SELECT * FROM user_interactions WHERE user_id = $1 AND target_user_id = $2`
	err := r.db.GetContext(ctx, &interaction, query, userID, targetUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	query := `SELECT * FROM user_interactions WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &interactions, query, userID)
	return interactions, err
}

func (r *interactionRepository) ListByUserAndAction(ctx context.Context, userID int, action domain.InteractionAction) ([]*domain.Interaction, error) {
	var interactions []*domain.Interaction
	query := `
		SELECT * FROM user_interactions
		WHERE user_id = $1 AND action = $2
		ORDER BY updated_at DESC
	`
	err := r.db.SelectContext(ctx, &interactions, query, userID, action)
	return interactions, err
}
