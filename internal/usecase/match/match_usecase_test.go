package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/takeyours/takeyours-backend/internal/domain"
)

type mockUserRepo struct {
	usersByEmail map[string]*domain.User
	usersByID    map[int]*domain.User
	candidates   []*domain.User
	candidateArg int
}

func (m *mockUserRepo) Create(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	if u, ok := m.usersByID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) UpdatePassword(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) SaveIdentity(context.Context, string, *domain.IdentitySubmission) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) SavePersonal(context.Context, string, *domain.PersonalInfo) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) SavePreferences(context.Context, string, *domain.Preferences) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) ResetFull(context.Context, string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) ResetIdentity(context.Context, string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) ResetPersonal(context.Context, string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) UpdateStatus(context.Context, int, domain.Status, *string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) ListAll(context.Context) ([]*domain.UserSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) ListCandidates(_ context.Context, excludeUserID int) ([]*domain.User, error) {
	m.candidateArg = excludeUserID
	return m.candidates, nil
}

type mockInteractionRepo struct {
	interactions []*domain.Interaction
	upserts      []*domain.Interaction
	updateErr    error
}

func (m *mockInteractionRepo) Upsert(_ context.Context, userID, targetUserID int, action domain.InteractionAction) error {
	m.upserts = append(m.upserts, &domain.Interaction{
		UserID:       userID,
		TargetUserID: targetUserID,
		Action:       action,
	})
	return nil
}

func (m *mockInteractionRepo) UpdateAction(_ context.Context, userID, targetUserID int, action domain.InteractionAction) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, it := range m.interactions {
		if it.UserID == userID && it.TargetUserID == targetUserID {
			it.Action = action
			return nil
		}
	}
	return domain.ErrInteractionNotFound
}

func (m *mockInteractionRepo) Get(_ context.Context, userID, targetUserID int) (*domain.Interaction, error) {
	for _, it := range m.interactions {
		if it.UserID == userID && it.TargetUserID == targetUserID {
			return it, nil
		}
	}
	return nil, domain.ErrInteractionNotFound
}

func (m *mockInteractionRepo) ListByUser(_ context.Context, userID int) ([]*domain.Interaction, error) {
	var out []*domain.Interaction
	for _, it := range m.interactions {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockInteractionRepo) ListByUserAndAction(_ context.Context, userID int, action domain.InteractionAction) ([]*domain.Interaction, error) {
	var out []*domain.Interaction
	for _, it := range m.interactions {
		if it.UserID == userID && it.Action == action {
			out = append(out, it)
		}
	}
	return out, nil
}

func strptr(s string) *string { return &s }

func approvedUser(id int, gender string) *domain.User {
	return &domain.User{
		ID:         id,
		Gender:     strptr(gender),
		Status:     domain.StatusApproved,
		IsComplete: true,
	}
}

func newTestUseCase(userRepo *mockUserRepo, interactionRepo *mockInteractionRepo) *MatchUseCase {
	return NewMatchUseCase(userRepo, interactionRepo, zap.NewNop())
}

func TestDiscoveryRanksByScoreDescending(t *testing.T) {
	viewer := &domain.User{ID: 1, PrefGender: strptr("female")}
	low := approvedUser(2, "male")
	high := approvedUser(3, "female")

	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		candidates:   []*domain.User{low, high},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	matches, err := uc.Discovery(context.Background(), "viewer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Profile.ID != 3 || matches[1].Profile.ID != 2 {
		t.Errorf("expected order [3 2], got [%d %d]", matches[0].Profile.ID, matches[1].Profile.ID)
	}
	if matches[0].Score != 1 || matches[1].Score != 0 {
		t.Errorf("expected scores [1 0], got [%d %d]", matches[0].Score, matches[1].Score)
	}
	if matches[0].MaxScore != domain.MaxMatchScore {
		t.Errorf("expected max score %d, got %d", domain.MaxMatchScore, matches[0].MaxScore)
	}
	if userRepo.candidateArg != viewer.ID {
		t.Errorf("expected self-exclusion by id %d, got %d", viewer.ID, userRepo.candidateArg)
	}
}

func TestDiscoveryTiesKeepRepositoryOrder(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		candidates:   []*domain.User{approvedUser(2, "male"), approvedUser(3, "male"), approvedUser(4, "male")},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	matches, err := uc.Discovery(context.Background(), "viewer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 3, 4}
	for i, id := range want {
		if matches[i].Profile.ID != id {
			t.Errorf("position %d: expected id %d, got %d", i, id, matches[i].Profile.ID)
		}
	}
}

func TestDiscoveryExcludesInteractedCandidates(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		candidates:   []*domain.User{approvedUser(2, "male"), approvedUser(3, "male")},
	}
	interactionRepo := &mockInteractionRepo{
		interactions: []*domain.Interaction{
			{UserID: 1, TargetUserID: 2, Action: domain.ActionSelected},
		},
	}
	uc := newTestUseCase(userRepo, interactionRepo)

	matches, err := uc.Discovery(context.Background(), "viewer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Profile.ID != 3 {
		t.Fatalf("expected only candidate 3, got %+v", matches)
	}
}

func TestDiscoveryNeverLeaksSensitiveFields(t *testing.T) {
	viewer := &domain.User{ID: 1}
	candidate := approvedUser(2, "male")
	candidate.Email = "candidate@example.com"
	candidate.PasswordHash = "secret"
	candidate.NationalIDNumber = strptr("A1234567")

	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		candidates:   []*domain.User{candidate},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	matches, err := uc.Discovery(context.Background(), "viewer@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// PublicProfile has no email, credential or document fields at all;
	// check the visible surface carries only profile data.
	if matches[0].Profile.ID != 2 {
		t.Errorf("expected candidate id 2, got %d", matches[0].Profile.ID)
	}
}

func TestSelectRejectsSelf(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	err := uc.Select(context.Background(), "viewer@example.com", 1)
	if !errors.Is(err, domain.ErrCannotSelectSelf) {
		t.Errorf("expected ErrCannotSelectSelf, got %v", err)
	}
}

func TestSelectUnknownTarget(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	err := uc.Select(context.Background(), "viewer@example.com", 99)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSelectUpsertsInteraction(t *testing.T) {
	viewer := &domain.User{ID: 1}
	target := approvedUser(2, "male")
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		usersByID:    map[int]*domain.User{2: target},
	}
	interactionRepo := &mockInteractionRepo{}
	uc := newTestUseCase(userRepo, interactionRepo)

	if err := uc.Select(context.Background(), "viewer@example.com", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interactionRepo.upserts) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(interactionRepo.upserts))
	}
	got := interactionRepo.upserts[0]
	if got.UserID != 1 || got.TargetUserID != 2 || got.Action != domain.ActionSelected {
		t.Errorf("unexpected upsert %+v", got)
	}
}

func TestRespondValidatesAction(t *testing.T) {
	uc := newTestUseCase(&mockUserRepo{}, &mockInteractionRepo{})

	err := uc.Respond(context.Background(), "viewer@example.com", 2, domain.ActionSelected)
	if !errors.Is(err, domain.ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
}

func TestRespondUpdatesExistingInteraction(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	interactionRepo := &mockInteractionRepo{
		interactions: []*domain.Interaction{
			{UserID: 1, TargetUserID: 2, Action: domain.ActionSelected},
		},
	}
	uc := newTestUseCase(userRepo, interactionRepo)

	if err := uc.Respond(context.Background(), "viewer@example.com", 2, domain.ActionAccepted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interactionRepo.interactions[0].Action != domain.ActionAccepted {
		t.Errorf("expected action accepted, got %s", interactionRepo.interactions[0].Action)
	}
}

func TestRespondMissingInteraction(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	err := uc.Respond(context.Background(), "viewer@example.com", 2, domain.ActionRejected)
	if !errors.Is(err, domain.ErrInteractionNotFound) {
		t.Errorf("expected ErrInteractionNotFound, got %v", err)
	}
}

func TestListByActionScoresTargets(t *testing.T) {
	viewer := &domain.User{ID: 1, PrefGender: strptr("female")}
	selected := approvedUser(2, "female")
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		usersByID:    map[int]*domain.User{2: selected},
	}
	interactionRepo := &mockInteractionRepo{
		interactions: []*domain.Interaction{
			{UserID: 1, TargetUserID: 2, Action: domain.ActionSelected},
			{UserID: 1, TargetUserID: 3, Action: domain.ActionRejected},
		},
	}
	uc := newTestUseCase(userRepo, interactionRepo)

	matches, err := uc.ListByAction(context.Background(), "viewer@example.com", domain.ActionSelected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Profile.ID != 2 || matches[0].Score != 1 {
		t.Errorf("unexpected match %+v", matches[0])
	}
}

func TestListByActionSkipsUnresolvableTargets(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	interactionRepo := &mockInteractionRepo{
		interactions: []*domain.Interaction{
			{UserID: 1, TargetUserID: 99, Action: domain.ActionSelected},
		},
	}
	uc := newTestUseCase(userRepo, interactionRepo)

	matches, err := uc.ListByAction(context.Background(), "viewer@example.com", domain.ActionSelected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestProfileIncludesRecordedAction(t *testing.T) {
	viewer := &domain.User{ID: 1, PrefGender: strptr("female")}
	target := approvedUser(2, "female")
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		usersByID:    map[int]*domain.User{2: target},
	}
	interactionRepo := &mockInteractionRepo{
		interactions: []*domain.Interaction{
			{UserID: 1, TargetUserID: 2, Action: domain.ActionAccepted},
		},
	}
	uc := newTestUseCase(userRepo, interactionRepo)

	m, err := uc.Profile(context.Background(), "viewer@example.com", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Profile.ID != 2 {
		t.Errorf("expected profile id 2, got %d", m.Profile.ID)
	}
	if m.Action != domain.ActionAccepted {
		t.Errorf("expected action accepted, got %q", m.Action)
	}
	if m.Score != 1 || m.MaxScore != domain.MaxMatchScore {
		t.Errorf("unexpected scoring %d/%d", m.Score, m.MaxScore)
	}
}

func TestProfileWithoutInteractionHasNoAction(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
		usersByID:    map[int]*domain.User{2: approvedUser(2, "male")},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	m, err := uc.Profile(context.Background(), "viewer@example.com", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Action != "" {
		t.Errorf("expected empty action, got %q", m.Action)
	}
}

func TestProfileUnknownTarget(t *testing.T) {
	viewer := &domain.User{ID: 1}
	userRepo := &mockUserRepo{
		usersByEmail: map[string]*domain.User{"viewer@example.com": viewer},
	}
	uc := newTestUseCase(userRepo, &mockInteractionRepo{})

	_, err := uc.Profile(context.Background(), "viewer@example.com", 99)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPublicProfileAge(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	u := &domain.User{ID: 5, DOB: &dob}

	profile := publicProfile(u, now)
	if profile.Age == nil || *profile.Age != 26 {
		t.Errorf("expected age 26, got %v", profile.Age)
	}

	profile = publicProfile(&domain.User{ID: 6}, now)
	if profile.Age != nil {
		t.Errorf("expected nil age, got %d", *profile.Age)
	}
}
