package repository

import (
	"context"

	"github.com/takeyours/takeyours-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error

	// Stage writes. Each advances current_step in the same statement that
	// stores the stage's fields, so a concurrent reader never sees a step
	// pointing past data that is not there.
	SaveIdentity(ctx context.Context, email string, sub *domain.IdentitySubmission) error
	SavePersonal(ctx context.Context, email string, info *domain.PersonalInfo) error
	SavePreferences(ctx context.Context, email string, prefs *domain.Preferences) error

	// Stage resets. Field clearing, status=pending, is_complete=false and
	// the step rollback happen in one UPDATE.
	ResetFull(ctx context.Context, email string) error
	ResetIdentity(ctx context.Context, email string) error
	ResetPersonal(ctx context.Context, email string) error

	// Moderation. Approving forces current_step=dashboard in the same
	// statement; the message is always stored, nil clears it.
	UpdateStatus(ctx context.Context, id int, status domain.Status, adminMessage *string) error

	ListAll(ctx context.Context) ([]*domain.UserSummary, error)
	ListCandidates(ctx context.Context, excludeUserID int) ([]*domain.User, error)
}
