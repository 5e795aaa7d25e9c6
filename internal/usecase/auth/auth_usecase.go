package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/email"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/otp"
	"github.com/takeyours/takeyours-backend/internal/repository"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	otpStore otp.Store
	sender   email.Sender
	tokens   *TokenService
	logger   *zap.Logger
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	otpStore otp.Store,
	sender email.Sender,
	tokens *TokenService,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		otpStore: otpStore,
		sender:   sender,
		tokens:   tokens,
		logger:   logger,
	}
}

// LoginResult is returned on successful login so the client can route
// without a second progress request.
type LoginResult struct {
	Token       string
	ExpiresAt   time.Time
	Email       string
	CurrentStep domain.Step
	Status      domain.Status
}

// SendRegistrationOTP mails a fresh code to an email that has no account
// yet. Returns domain.ErrOTPRateLimited when the send limit is reached.
func (uc *AuthUseCase) SendRegistrationOTP(ctx context.Context, emailAddr string) error {
	_, err := uc.userRepo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	return uc.sendOTP(ctx, emailAddr)
}

// SendResetOTP mails a fresh code for password reset. The account must
// exist.
func (uc *AuthUseCase) SendResetOTP(ctx context.Context, emailAddr string) error {
	if _, err := uc.userRepo.GetByEmail(ctx, emailAddr); err != nil {
		return err
	}
	return uc.sendOTP(ctx, emailAddr)
}

func (uc *AuthUseCase) sendOTP(ctx context.Context, emailAddr string) error {
	ok, err := uc.otpStore.CanSend(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("failed to check otp rate limit: %w", err)
	}
	if !ok {
		return domain.ErrOTPRateLimited
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := uc.otpStore.Put(ctx, emailAddr, code); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	if err := uc.sender.SendOTP(ctx, emailAddr, code); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	if err := uc.otpStore.IncrementAttempts(ctx, emailAddr); err != nil {
		uc.logger.Warn("failed to increment otp attempts", zap.String("email", emailAddr), zap.Error(err))
	}
	return nil
}

// Register consumes the OTP and creates the account with a bcrypt password
// hash. New accounts start at the identity step with pending status.
func (uc *AuthUseCase) Register(ctx context.Context, emailAddr, code, password string) (*domain.User, error) {
	ok, err := uc.otpStore.Verify(ctx, emailAddr, code)
	if err != nil {
		return nil, fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		return nil, domain.ErrOTPInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := uc.userRepo.Create(ctx, emailAddr, string(hash))
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("email", emailAddr))
	return user, nil
}

// Login checks credentials and issues a user token.
func (uc *AuthUseCase) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.IssueUserToken(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	step := user.CurrentStep
	if !step.Valid() {
		step = domain.StepIdentity
	}
	status := user.Status
	if !status.Valid() {
		status = domain.StatusPending
	}

	return &LoginResult{
		Token:       token,
		ExpiresAt:   expiresAt,
		Email:       user.Email,
		CurrentStep: step,
		Status:      status,
	}, nil
}

// CheckResetOTP validates the reset code without consuming it, so the
// client can move to the new-password screen.
func (uc *AuthUseCase) CheckResetOTP(ctx context.Context, emailAddr, code string) error {
	ok, err := uc.otpStore.Check(ctx, emailAddr, code)
	if err != nil {
		return fmt.Errorf("failed to check otp: %w", err)
	}
	if !ok {
		return domain.ErrOTPInvalid
	}
	return nil
}

// ResetPassword consumes the reset code and stores a new password hash.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, emailAddr, code, newPassword string) error {
	ok, err := uc.otpStore.Verify(ctx, emailAddr, code)
	if err != nil {
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		return domain.ErrOTPInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := uc.userRepo.UpdatePassword(ctx, emailAddr, string(hash)); err != nil {
		return err
	}
	uc.logger.Info("password reset", zap.String("email", emailAddr))
	return nil
}
