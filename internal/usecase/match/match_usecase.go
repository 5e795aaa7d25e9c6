package match

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/repository"
)

type MatchUseCase struct {
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
	logger          *zap.Logger
}

func NewMatchUseCase(
	userRepo repository.UserRepository,
	interactionRepo repository.InteractionRepository,
	logger *zap.Logger,
) *MatchUseCase {
	return &MatchUseCase{
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		logger:          logger,
	}
}

// PublicProfile is the candidate view exposed to other users. Credentials,
// identity documents and provider asset ids never leave the server.
type PublicProfile struct {
	ID                 int      `json:"id"`
	FullName           *string  `json:"full_name"`
	Age                *int     `json:"age"`
	Gender             *string  `json:"gender"`
	Orientation        *string  `json:"orientation"`
	CountryOfBirth     *string  `json:"country_of_birth"`
	CountryOfResidence *string  `json:"country_of_residence"`
	WillingToRelocate  *string  `json:"willing_to_relocate"`
	Languages          []string `json:"languages"`
	Education          *string  `json:"education"`
	Occupation         *string  `json:"occupation"`
	Religion           *string  `json:"religion"`
	Height             *int     `json:"height"`
	BodyType           *string  `json:"body_type"`
	SkinColor          *string  `json:"skin_color"`
	Ethnicity          *string  `json:"ethnicity"`
	Diet               *string  `json:"diet"`
	Smoking            *string  `json:"smoking"`
	Drinking           *string  `json:"drinking"`
	Exercise           *string  `json:"exercise"`
	Pets               *string  `json:"pets"`
	Children           *string  `json:"children"`
	LivingSituation    *string  `json:"living_situation"`
	ProfilePhotoURL    *string  `json:"profile_photo_url"`
	ProfileVideoURL    *string  `json:"profile_video_url"`
}

// Match is a ranked candidate. Action is set on interaction lists and
// empty on discovery, where no decision exists yet.
type Match struct {
	Profile  PublicProfile            `json:"profile"`
	Score    int                      `json:"score"`
	MaxScore int                      `json:"max_score"`
	Action   domain.InteractionAction `json:"action,omitempty"`
}

// Discovery returns approved, complete candidates the viewer has not
// interacted with yet, ranked by descending match score. Ties keep the
// repository order, so equal-scored candidates rank oldest first.
func (uc *MatchUseCase) Discovery(ctx context.Context, viewerEmail string) ([]*Match, error) {
	viewer, err := uc.userRepo.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.userRepo.ListCandidates(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	interactions, err := uc.interactionRepo.ListByUser(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]struct{}, len(interactions))
	for _, it := range interactions {
		seen[it.TargetUserID] = struct{}{}
	}

	now := time.Now()
	matches := make([]*Match, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.ID]; ok {
			continue
		}
		matches = append(matches, &Match{
			Profile:  publicProfile(candidate, now),
			Score:    domain.MatchScoreAt(candidate, viewer, now),
			MaxScore: domain.MaxMatchScore,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// ListByAction returns the viewer's dedicated list for one action: the
// candidates the viewer selected, accepted or rejected, scored and ranked
// the same way as discovery.
func (uc *MatchUseCase) ListByAction(ctx context.Context, viewerEmail string, action domain.InteractionAction) ([]*Match, error) {
	if !action.Valid() {
		return nil, domain.ErrInvalidAction
	}
	viewer, err := uc.userRepo.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return nil, err
	}

	interactions, err := uc.interactionRepo.ListByUserAndAction(ctx, viewer.ID, action)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	matches := make([]*Match, 0, len(interactions))
	for _, it := range interactions {
		candidate, err := uc.userRepo.GetByID(ctx, it.TargetUserID)
		if err != nil {
			uc.logger.Warn("interaction target no longer resolvable",
				zap.Int("target_user_id", it.TargetUserID), zap.Error(err))
			continue
		}
		matches = append(matches, &Match{
			Profile:  publicProfile(candidate, now),
			Score:    domain.MatchScoreAt(candidate, viewer, now),
			MaxScore: domain.MaxMatchScore,
			Action:   it.Action,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// Select records that the viewer picked the target. Re-selecting a target
// already interacted with resets the pair's action back to selected.
func (uc *MatchUseCase) Select(ctx context.Context, viewerEmail string, targetUserID int) error {
	viewer, err := uc.userRepo.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return err
	}
	if viewer.ID == targetUserID {
		return domain.ErrCannotSelectSelf
	}
	if _, err := uc.userRepo.GetByID(ctx, targetUserID); err != nil {
		return err
	}
	if err := uc.interactionRepo.Upsert(ctx, viewer.ID, targetUserID, domain.ActionSelected); err != nil {
		return err
	}
	uc.logger.Info("user selected",
		zap.Int("viewer_id", viewer.ID), zap.Int("target_id", targetUserID))
	return nil
}

// Respond moves one of the viewer's selections to accepted or rejected.
func (uc *MatchUseCase) Respond(ctx context.Context, viewerEmail string, targetUserID int, action domain.InteractionAction) error {
	if action != domain.ActionAccepted && action != domain.ActionRejected {
		return domain.ErrInvalidAction
	}
	viewer, err := uc.userRepo.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return err
	}
	return uc.interactionRepo.UpdateAction(ctx, viewer.ID, targetUserID, action)
}

// Profile returns a single candidate scored against the viewer, with the
// viewer's recorded action when the pair already has one.
func (uc *MatchUseCase) Profile(ctx context.Context, viewerEmail string, userID int) (*Match, error) {
	viewer, err := uc.userRepo.GetByEmail(ctx, viewerEmail)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m := &Match{
		Profile:  publicProfile(user, now),
		Score:    domain.MatchScoreAt(user, viewer, now),
		MaxScore: domain.MaxMatchScore,
	}
	it, err := uc.interactionRepo.Get(ctx, viewer.ID, userID)
	switch {
	case err == nil:
		m.Action = it.Action
	case errors.Is(err, domain.ErrInteractionNotFound):
	default:
		return nil, err
	}
	return m, nil
}

func publicProfile(u *domain.User, now time.Time) PublicProfile {
	var age *int
	if u.DOB != nil {
		a := u.AgeAt(now)
		age = &a
	}
	return PublicProfile{
		ID:                 u.ID,
		FullName:           u.FullName,
		Age:                age,
		Gender:             u.Gender,
		Orientation:        u.Orientation,
		CountryOfBirth:     u.CountryOfBirth,
		CountryOfResidence: u.CountryOfResidence,
		WillingToRelocate:  u.WillingToRelocate,
		Languages:          u.Languages,
		Education:          u.Education,
		Occupation:         u.Occupation,
		Religion:           u.Religion,
		Height:             u.Height,
		BodyType:           u.BodyType,
		SkinColor:          u.SkinColor,
		Ethnicity:          u.Ethnicity,
		Diet:               u.Diet,
		Smoking:            u.Smoking,
		Drinking:           u.Drinking,
		Exercise:           u.Exercise,
		Pets:               u.Pets,
		Children:           u.Children,
		LivingSituation:    u.LivingSituation,
		ProfilePhotoURL:    u.ProfilePhotoURL,
		ProfileVideoURL:    u.ProfileVideoURL,
	}
}
