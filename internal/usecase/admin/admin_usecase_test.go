package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/usecase/auth"
)

type mockAdminRepo struct {
	admins map[string]*domain.Admin
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if a, ok := m.admins[email]; ok {
		return a, nil
	}
	return nil, domain.ErrAdminNotFound
}

type mockUserRepo struct {
	users     map[int]*domain.User
	summaries []*domain.UserSummary

	statusUpdates []statusUpdate
}

type statusUpdate struct {
	userID  int
	status  domain.Status
	message *string
}

func (m *mockUserRepo) Create(context.Context, string, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
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

func (m *mockUserRepo) UpdateStatus(_ context.Context, userID int, status domain.Status, message *string) error {
	m.statusUpdates = append(m.statusUpdates, statusUpdate{userID: userID, status: status, message: message})
	return nil
}

func (m *mockUserRepo) ListAll(context.Context) ([]*domain.UserSummary, error) {
	return m.summaries, nil
}

func (m *mockUserRepo) ListCandidates(context.Context, int) ([]*domain.User, error) {
	return nil, errors.New("not implemented")
}

func strptr(s string) *string { return &s }

func newTestUseCase(t *testing.T, userRepo *mockUserRepo) *AdminUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	adminRepo := &mockAdminRepo{admins: map[string]*domain.Admin{
		"admin@example.com": {ID: 7, Email: "admin@example.com", PasswordHash: string(hash)},
	}}
	tokens := auth.NewTokenService("0123456789abcdef0123456789abcdef", 2*time.Hour, 24*time.Hour)
	return NewAdminUseCase(adminRepo, userRepo, tokens, zap.NewNop())
}

func TestAdminLogin(t *testing.T) {
	uc := newTestUseCase(t, &mockUserRepo{})

	t.Run("issues admin token", func(t *testing.T) {
		result, err := uc.Login(context.Background(), "admin@example.com", "admin-password")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := uc.tokens.Parse(result.Token)
		if err != nil {
			t.Fatalf("token does not parse: %v", err)
		}
		if claims.Role != auth.RoleAdmin || claims.AdminID != 7 {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Login(context.Background(), "admin@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown admin maps to invalid credentials", func(t *testing.T) {
		_, err := uc.Login(context.Background(), "ghost@example.com", "admin-password")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestModerate(t *testing.T) {
	t.Run("updates status with message", func(t *testing.T) {
		userRepo := &mockUserRepo{users: map[int]*domain.User{
			3: {ID: 3, Email: "user@example.com"},
		}}
		uc := newTestUseCase(t, userRepo)

		msg := strptr("documents unreadable")
		if err := uc.Moderate(context.Background(), 3, domain.StatusDisapproved, msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(userRepo.statusUpdates) != 1 {
			t.Fatalf("expected 1 update, got %d", len(userRepo.statusUpdates))
		}
		got := userRepo.statusUpdates[0]
		if got.userID != 3 || got.status != domain.StatusDisapproved || got.message != msg {
			t.Errorf("unexpected update %+v", got)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		uc := newTestUseCase(t, &mockUserRepo{})
		err := uc.Moderate(context.Background(), 3, domain.Status("banned"), nil)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("rejects pending as a decision", func(t *testing.T) {
		userRepo := &mockUserRepo{users: map[int]*domain.User{
			3: {ID: 3, Email: "user@example.com", Status: domain.StatusApproved},
		}}
		uc := newTestUseCase(t, userRepo)

		err := uc.Moderate(context.Background(), 3, domain.StatusPending, nil)
		if !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
		if len(userRepo.statusUpdates) != 0 {
			t.Errorf("expected no status update, got %v", userRepo.statusUpdates)
		}
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		uc := newTestUseCase(t, &mockUserRepo{users: map[int]*domain.User{}})
		err := uc.Moderate(context.Background(), 99, domain.StatusApproved, nil)
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	userRepo := &mockUserRepo{summaries: []*domain.UserSummary{
		{ID: 1, Email: "a@example.com", Status: domain.StatusPending},
		{ID: 2, Email: "b@example.com", Status: domain.StatusApproved},
	}}
	uc := newTestUseCase(t, userRepo)

	users, err := uc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}
