package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/media"
)

type mockUserRepo struct {
	users map[string]*domain.User

	savedIdentity    *domain.IdentitySubmission
	savedPersonal    *domain.PersonalInfo
	savedPreferences *domain.Preferences
	resets           []domain.ResetScope
}

func (m *mockUserRepo) Create(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(context.Context, int) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) UpdatePassword(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) SaveIdentity(_ context.Context, _ string, sub *domain.IdentitySubmission) error {
	m.savedIdentity = sub
	return nil
}

func (m *mockUserRepo) SavePersonal(_ context.Context, _ string, info *domain.PersonalInfo) error {
	m.savedPersonal = info
	return nil
}

func (m *mockUserRepo) SavePreferences(_ context.Context, _ string, prefs *domain.Preferences) error {
	m.savedPreferences = prefs
	return nil
}

func (m *mockUserRepo) ResetFull(context.Context, string) error {
	m.resets = append(m.resets, domain.ResetFull)
	return nil
}

func (m *mockUserRepo) ResetIdentity(context.Context, string) error {
	m.resets = append(m.resets, domain.ResetIdentity)
	return nil
}

func (m *mockUserRepo) ResetPersonal(context.Context, string) error {
	m.resets = append(m.resets, domain.ResetPersonal)
	return nil
}

func (m *mockUserRepo) UpdateStatus(context.Context, int, domain.Status, *string) error {
	return errors.New("not implemented")
}

func (m *mockUserRepo) ListAll(context.Context) ([]*domain.UserSummary, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) ListCandidates(context.Context, int) ([]*domain.User, error) {
	return nil, errors.New("not implemented")
}

type mockMediaStore struct {
	uploads   []media.Kind
	deletes   []string
	uploadErr error
	deleteErr error
}

func (m *mockMediaStore) Upload(_ context.Context, _ io.Reader, kind media.Kind) (*media.Asset, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.uploads = append(m.uploads, kind)
	return &media.Asset{
		URL:      "https://cdn.example.com/" + string(kind),
		PublicID: "pid_" + string(kind),
	}, nil
}

func (m *mockMediaStore) Delete(_ context.Context, publicID string, _ media.Kind) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletes = append(m.deletes, publicID)
	return nil
}

func strptr(s string) *string { return &s }

func userAtStep(step domain.Step) *domain.User {
	return &domain.User{
		ID:          1,
		Email:       "user@example.com",
		CurrentStep: step,
		Status:      domain.StatusPending,
	}
}

func newTestUseCase(repo *mockUserRepo, store *mockMediaStore) *OnboardingUseCase {
	return NewOnboardingUseCase(repo, store, zap.NewNop())
}

func identityUpload() *IdentityUpload {
	return &IdentityUpload{
		NationalIDNumber: strptr("A1234567"),
		IDFront:          strings.NewReader("front"),
		IDBack:           strings.NewReader("back"),
		LivenessVideo:    strings.NewReader("video"),
	}
}

func TestProgressRouting(t *testing.T) {
	tests := []struct {
		name   string
		user   *domain.User
		want   domain.Step
		status domain.Status
	}{
		{
			name:   "pending user routes to current step",
			user:   userAtStep(domain.StepPersonal),
			want:   domain.StepPersonal,
			status: domain.StatusPending,
		},
		{
			name: "approved user routes to dashboard",
			user: &domain.User{
				Email:       "user@example.com",
				CurrentStep: domain.StepSubmission,
				Status:      domain.StatusApproved,
			},
			want:   domain.StepDashboard,
			status: domain.StatusApproved,
		},
		{
			name: "disapproved user routes to submission",
			user: &domain.User{
				Email:       "user@example.com",
				CurrentStep: domain.StepPreferences,
				Status:      domain.StatusDisapproved,
			},
			want:   domain.StepSubmission,
			status: domain.StatusDisapproved,
		},
		{
			name:   "empty step and status default safely",
			user:   &domain.User{Email: "user@example.com"},
			want:   domain.StepIdentity,
			status: domain.StatusPending,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": tt.user}}
			uc := newTestUseCase(repo, &mockMediaStore{})

			progress, err := uc.Progress(context.Background(), "user@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if progress.Route != tt.want {
				t.Errorf("route = %q, want %q", progress.Route, tt.want)
			}
			if progress.Status != tt.status {
				t.Errorf("status = %q, want %q", progress.Status, tt.status)
			}
		})
	}
}

func TestProgressWireFormat(t *testing.T) {
	msg := "documents unreadable"
	repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": {
		Email:        "user@example.com",
		CurrentStep:  domain.StepSubmission,
		Status:       domain.StatusDisapproved,
		AdminMessage: &msg,
	}}}
	uc := newTestUseCase(repo, &mockMediaStore{})

	progress, err := uc.Progress(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := json.Marshal(progress)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, ok := payload["adminMessage"]; !ok || got != msg {
		t.Errorf("adminMessage = %v (present=%v), want %q", got, ok, msg)
	}
	if _, ok := payload["admin_message"]; ok {
		t.Error("payload carries admin_message, want adminMessage only")
	}
}

func TestSaveIdentityUploadsAllAssets(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepIdentity),
	}}
	store := &mockMediaStore{}
	uc := newTestUseCase(repo, store)

	if err := uc.SaveIdentity(context.Background(), "user@example.com", identityUpload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.uploads) != 3 {
		t.Fatalf("expected 3 uploads, got %d", len(store.uploads))
	}
	if repo.savedIdentity == nil {
		t.Fatal("expected identity submission to be saved")
	}
	if repo.savedIdentity.IDFront.PublicID != "pid_id_front" {
		t.Errorf("unexpected front public id %q", repo.savedIdentity.IDFront.PublicID)
	}
}

func TestSaveIdentityWrongStep(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepPreferences),
	}}
	store := &mockMediaStore{}
	uc := newTestUseCase(repo, store)

	err := uc.SaveIdentity(context.Background(), "user@example.com", identityUpload())
	if !errors.Is(err, domain.ErrStepMismatch) {
		t.Fatalf("expected ErrStepMismatch, got %v", err)
	}
	if len(store.uploads) != 0 {
		t.Errorf("expected no uploads on step mismatch, got %d", len(store.uploads))
	}
	if repo.savedIdentity != nil {
		t.Error("expected no save on step mismatch")
	}
}

func TestSaveIdentityMissingAsset(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepIdentity),
	}}
	uc := newTestUseCase(repo, &mockMediaStore{})

	upload := identityUpload()
	upload.LivenessVideo = nil
	err := uc.SaveIdentity(context.Background(), "user@example.com", upload)
	if !errors.Is(err, domain.ErrInvalidSubmission) {
		t.Errorf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestSaveIdentityUploadFailureAborts(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepIdentity),
	}}
	store := &mockMediaStore{uploadErr: errors.New("host down")}
	uc := newTestUseCase(repo, store)

	err := uc.SaveIdentity(context.Background(), "user@example.com", identityUpload())
	if err == nil {
		t.Fatal("expected error")
	}
	if repo.savedIdentity != nil {
		t.Error("expected no save when upload fails")
	}
}

func TestSavePersonalKeepsStoredMediaWhenNotReuploaded(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepPersonal),
	}}
	store := &mockMediaStore{}
	uc := newTestUseCase(repo, store)

	err := uc.SavePersonal(context.Background(), "user@example.com", &PersonalUpload{
		Info: domain.PersonalInfo{FullName: strptr("Jane Doe")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.uploads) != 0 {
		t.Errorf("expected no uploads, got %d", len(store.uploads))
	}
	if repo.savedPersonal.ProfilePhoto != nil || repo.savedPersonal.ProfileVideo != nil {
		t.Error("expected nil media refs so stored assets are kept")
	}
}

func TestSavePersonalReplacesOldAsset(t *testing.T) {
	user := userAtStep(domain.StepPersonal)
	user.ProfilePhotoPublicID = strptr("old_photo")
	repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": user}}
	store := &mockMediaStore{}
	uc := newTestUseCase(repo, store)

	err := uc.SavePersonal(context.Background(), "user@example.com", &PersonalUpload{
		ProfilePhoto: strings.NewReader("new photo"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "old_photo" {
		t.Errorf("expected old photo delete, got %v", store.deletes)
	}
	if repo.savedPersonal.ProfilePhoto == nil {
		t.Fatal("expected new photo ref")
	}
}

func TestSavePreferencesWrongStep(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepSubmission),
	}}
	uc := newTestUseCase(repo, &mockMediaStore{})

	err := uc.SavePreferences(context.Background(), "user@example.com", &domain.Preferences{})
	if !errors.Is(err, domain.ErrStepMismatch) {
		t.Errorf("expected ErrStepMismatch, got %v", err)
	}
}

func TestResetDeletesScopedAssets(t *testing.T) {
	user := userAtStep(domain.StepSubmission)
	user.IDFrontPublicID = strptr("front")
	user.IDBackPublicID = strptr("back")
	user.LivenessPublicID = strptr("liveness")
	user.ProfilePhotoPublicID = strptr("photo")
	user.ProfileVideoPublicID = strptr("video")

	t.Run("identity scope deletes identity assets only", func(t *testing.T) {
		repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": user}}
		store := &mockMediaStore{}
		uc := newTestUseCase(repo, store)

		if err := uc.Reset(context.Background(), "user@example.com", domain.ResetIdentity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deletes) != 3 {
			t.Errorf("expected 3 deletes, got %v", store.deletes)
		}
		if len(repo.resets) != 1 || repo.resets[0] != domain.ResetIdentity {
			t.Errorf("expected identity reset, got %v", repo.resets)
		}
	})

	t.Run("full scope deletes everything", func(t *testing.T) {
		repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": user}}
		store := &mockMediaStore{}
		uc := newTestUseCase(repo, store)

		if err := uc.Reset(context.Background(), "user@example.com", domain.ResetFull); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.deletes) != 5 {
			t.Errorf("expected 5 deletes, got %v", store.deletes)
		}
	})
}

func TestResetProceedsWhenAssetDeleteFails(t *testing.T) {
	user := userAtStep(domain.StepSubmission)
	user.ProfilePhotoPublicID = strptr("photo")
	repo := &mockUserRepo{users: map[string]*domain.User{"user@example.com": user}}
	store := &mockMediaStore{deleteErr: errors.New("host down")}
	uc := newTestUseCase(repo, store)

	if err := uc.Reset(context.Background(), "user@example.com", domain.ResetPersonal); err != nil {
		t.Fatalf("expected reset to proceed, got %v", err)
	}
	if len(repo.resets) != 1 || repo.resets[0] != domain.ResetPersonal {
		t.Errorf("expected personal reset, got %v", repo.resets)
	}
}

func TestResetUnknownScope(t *testing.T) {
	repo := &mockUserRepo{users: map[string]*domain.User{
		"user@example.com": userAtStep(domain.StepSubmission),
	}}
	uc := newTestUseCase(repo, &mockMediaStore{})

	err := uc.Reset(context.Background(), "user@example.com", domain.ResetScope("bogus"))
	if !errors.Is(err, domain.ErrInvalidSubmission) {
		t.Errorf("expected ErrInvalidSubmission, got %v", err)
	}
}
