package onboarding

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/media"
	"github.com/takeyours/takeyours-backend/internal/repository"
)

type OnboardingUseCase struct {
	userRepo repository.UserRepository
	media    media.Store
	logger   *zap.Logger
}

func NewOnboardingUseCase(userRepo repository.UserRepository, mediaStore media.Store, logger *zap.Logger) *OnboardingUseCase {
	return &OnboardingUseCase{
		userRepo: userRepo,
		media:    mediaStore,
		logger:   logger,
	}
}

// Progress is what the client needs to route after login or reload.
type Progress struct {
	Email        string        `json:"email"`
	CurrentStep  domain.Step   `json:"current_step"`
	Route        domain.Step   `json:"route"`
	Status       domain.Status `json:"status"`
	IsComplete   bool          `json:"is_complete"`
	AdminMessage *string       `json:"adminMessage"`
}

// IdentityUpload carries the identity stage's form fields and file streams.
type IdentityUpload struct {
	NationalIDNumber *string
	IDFront          io.Reader
	IDBack           io.Reader
	LivenessVideo    io.Reader
}

// PersonalUpload wraps the personal stage fields with optional media
// streams. Nil readers keep the stored assets.
type PersonalUpload struct {
	Info         domain.PersonalInfo
	ProfilePhoto io.Reader
	ProfileVideo io.Reader
}

// Progress returns the routing state for the user. Unknown steps fall back
// to identity so a client never dead-ends.
func (uc *OnboardingUseCase) Progress(ctx context.Context, email string) (*Progress, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	step := user.CurrentStep
	if !step.Valid() {
		step = domain.StepIdentity
	}
	status := user.Status
	if !status.Valid() {
		status = domain.StatusPending
	}
	return &Progress{
		Email:        user.Email,
		CurrentStep:  step,
		Route:        domain.RouteFor(step, status),
		Status:       status,
		IsComplete:   user.IsComplete,
		AdminMessage: user.AdminMessage,
	}, nil
}

// ProfilePhoto returns the user's hosted photo URL, nil when none is set.
func (uc *OnboardingUseCase) ProfilePhoto(ctx context.Context, email string) (*string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.ProfilePhotoURL, nil
}

// SaveIdentity uploads the three identity assets and stores the stage. The
// user must currently be on the identity step.
func (uc *OnboardingUseCase) SaveIdentity(ctx context.Context, email string, upload *IdentityUpload) error {
	user, err := uc.requireStep(ctx, email, domain.StepIdentity)
	if err != nil {
		return err
	}
	if upload.IDFront == nil || upload.IDBack == nil || upload.LivenessVideo == nil {
		return fmt.Errorf("id front, id back and liveness video are all required: %w", domain.ErrInvalidSubmission)
	}

	front, err := uc.uploadAsset(ctx, upload.IDFront, media.KindIDFront)
	if err != nil {
		return err
	}
	back, err := uc.uploadAsset(ctx, upload.IDBack, media.KindIDBack)
	if err != nil {
		return err
	}
	video, err := uc.uploadAsset(ctx, upload.LivenessVideo, media.KindLivenessVideo)
	if err != nil {
		return err
	}

	// Replacing a previous submission orphans its assets unless they are
	// deleted first.
	uc.deleteAsset(ctx, user.IDFrontPublicID, media.KindIDFront)
	uc.deleteAsset(ctx, user.IDBackPublicID, media.KindIDBack)
	uc.deleteAsset(ctx, user.LivenessPublicID, media.KindLivenessVideo)

	sub := &domain.IdentitySubmission{
		NationalIDNumber: upload.NationalIDNumber,
		IDFront:          domain.MediaRef{URL: front.URL, PublicID: front.PublicID},
		IDBack:           domain.MediaRef{URL: back.URL, PublicID: back.PublicID},
		LivenessVideo:    domain.MediaRef{URL: video.URL, PublicID: video.PublicID},
	}
	if err := uc.userRepo.SaveIdentity(ctx, email, sub); err != nil {
		return err
	}
	uc.logger.Info("identity stage saved", zap.String("email", email))
	return nil
}

// SavePersonal stores the personal stage. Media uploads are optional; a new
// upload replaces and deletes the stored asset.
func (uc *OnboardingUseCase) SavePersonal(ctx context.Context, email string, upload *PersonalUpload) error {
	user, err := uc.requireStep(ctx, email, domain.StepPersonal)
	if err != nil {
		return err
	}

	info := upload.Info
	if upload.ProfilePhoto != nil {
		asset, err := uc.uploadAsset(ctx, upload.ProfilePhoto, media.KindProfilePhoto)
		if err != nil {
			return err
		}
		uc.deleteAsset(ctx, user.ProfilePhotoPublicID, media.KindProfilePhoto)
		info.ProfilePhoto = &domain.MediaRef{URL: asset.URL, PublicID: asset.PublicID}
	}
	if upload.ProfileVideo != nil {
		asset, err := uc.uploadAsset(ctx, upload.ProfileVideo, media.KindProfileVideo)
		if err != nil {
			return err
		}
		uc.deleteAsset(ctx, user.ProfileVideoPublicID, media.KindProfileVideo)
		info.ProfileVideo = &domain.MediaRef{URL: asset.URL, PublicID: asset.PublicID}
	}

	if err := uc.userRepo.SavePersonal(ctx, email, &info); err != nil {
		return err
	}
	uc.logger.Info("personal stage saved", zap.String("email", email))
	return nil
}

// SavePreferences stores the final stage and marks the profile complete.
func (uc *OnboardingUseCase) SavePreferences(ctx context.Context, email string, prefs *domain.Preferences) error {
	if _, err := uc.requireStep(ctx, email, domain.StepPreferences); err != nil {
		return err
	}
	if err := uc.userRepo.SavePreferences(ctx, email, prefs); err != nil {
		return err
	}
	uc.logger.Info("preferences stage saved", zap.String("email", email))
	return nil
}

// Reset rolls the profile back to the scope's stage. Hosted assets covered
// by the scope are deleted best-effort before the database reset; a failed
// delete is logged and never blocks the reset.
func (uc *OnboardingUseCase) Reset(ctx context.Context, email string, scope domain.ResetScope) error {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	switch scope {
	case domain.ResetFull:
		uc.deleteIdentityAssets(ctx, user)
		uc.deletePersonalAssets(ctx, user)
		return uc.userRepo.ResetFull(ctx, email)
	case domain.ResetIdentity:
		uc.deleteIdentityAssets(ctx, user)
		return uc.userRepo.ResetIdentity(ctx, email)
	case domain.ResetPersonal:
		uc.deletePersonalAssets(ctx, user)
		return uc.userRepo.ResetPersonal(ctx, email)
	default:
		return fmt.Errorf("unknown reset scope %q: %w", scope, domain.ErrInvalidSubmission)
	}
}

func (uc *OnboardingUseCase) requireStep(ctx context.Context, email string, step domain.Step) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	current := user.CurrentStep
	if !current.Valid() {
		current = domain.StepIdentity
	}
	if current != step {
		return nil, domain.ErrStepMismatch
	}
	return user, nil
}

func (uc *OnboardingUseCase) uploadAsset(ctx context.Context, r io.Reader, kind media.Kind) (*media.Asset, error) {
	asset, err := uc.media.Upload(ctx, r, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind, err)
	}
	return asset, nil
}

func (uc *OnboardingUseCase) deleteAsset(ctx context.Context, publicID *string, kind media.Kind) {
	if publicID == nil || *publicID == "" {
		return
	}
	if err := uc.media.Delete(ctx, *publicID, kind); err != nil {
		uc.logger.Warn("failed to delete hosted asset",
			zap.String("public_id", *publicID),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

func (uc *OnboardingUseCase) deleteIdentityAssets(ctx context.Context, user *domain.User) {
	uc.deleteAsset(ctx, user.IDFrontPublicID, media.KindIDFront)
	uc.deleteAsset(ctx, user.IDBackPublicID, media.KindIDBack)
	uc.deleteAsset(ctx, user.LivenessPublicID, media.KindLivenessVideo)
}

func (uc *OnboardingUseCase) deletePersonalAssets(ctx context.Context, user *domain.User) {
	uc.deleteAsset(ctx, user.ProfilePhotoPublicID, media.KindProfilePhoto)
	uc.deleteAsset(ctx, user.ProfileVideoPublicID, media.KindProfileVideo)
}
