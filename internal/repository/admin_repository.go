package repository

import (
	"context"

	"github.com/takeyours/takeyours-backend/internal/domain"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
