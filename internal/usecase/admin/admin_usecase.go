package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/repository"
	"github.com/takeyours/takeyours-backend/internal/usecase/auth"
)

type AdminUseCase struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	tokens    *auth.TokenService
	logger    *zap.Logger
}

func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	logger *zap.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		tokens:    tokens,
		logger:    logger,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Email     string
}

// Login checks admin credentials and issues an admin-role token. Unknown
// emails and wrong passwords both surface as invalid credentials.
func (uc *AdminUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := uc.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.IssueAdminToken(admin.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}
	uc.logger.Info("admin logged in", zap.String("email", email))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Email: admin.Email}, nil
}

// ListUsers returns the moderation queue projection of every user.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	return uc.userRepo.ListAll(ctx)
}

// GetUser returns the full record for review, identity documents included.
func (uc *AdminUseCase) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// Moderate records an approve or disapprove decision with an optional
// message shown to the user. Approval routes the user straight to the
// dashboard. Pending is the pre-decision state, not a decision, so it is
// rejected here.
func (uc *AdminUseCase) Moderate(ctx context.Context, userID int, status domain.Status, message *string) error {
	if status != domain.StatusApproved && status != domain.StatusDisapproved {
		return domain.ErrInvalidStatus
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := uc.userRepo.UpdateStatus(ctx, userID, status, message); err != nil {
		return err
	}
	uc.logger.Info("user moderated",
		zap.Int("user_id", userID), zap.String("status", string(status)))
	return nil
}
