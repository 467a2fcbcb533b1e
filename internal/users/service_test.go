package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/pkg/config"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

type stubRepo struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubRepo) Update(_ context.Context, user *models.User) error {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return s.byID[id], nil
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.byEmail[strings.ToLower(strings.TrimSpace(email))], nil
}

func testService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo: repo,
		JWT: config.JWTConfig{
			Secret:         "unit-test-secret",
			Issuer:         "seaquote-test",
			AccessTokenTTL: 15 * time.Minute,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo)

	profile, err := svc.Register(context.Background(), RegisterInput{
		Email:    "Captain@Example.com",
		Password: "anchors-aweigh",
		FullName: "Captain Haddock",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.Email != "captain@example.com" {
		t.Fatalf("expected normalized email, got %q", profile.Email)
	}
	if profile.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role default, got %s", profile.Role)
	}

	result, err := svc.Login(context.Background(), "captain@example.com", "anchors-aweigh")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected access token")
	}
	stored := repo.byEmail["captain@example.com"]
	if stored.LastLoginAt == nil {
		t.Fatal("expected last login to be stamped")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo)

	input := RegisterInput{Email: "dup@example.com", Password: "long-enough", FullName: "Dup"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := testService(t, newStubRepo())
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "short@example.com",
		Password: "tiny",
		FullName: "Short",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "wrong@example.com",
		Password: "right-password",
		FullName: "Wrong",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, err := svc.Login(context.Background(), "wrong@example.com", "not-the-password")
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := newStubRepo()
	svc := testService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "inactive@example.com",
		Password: "long-enough",
		FullName: "Inactive",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	repo.byEmail["inactive@example.com"].IsActive = false

	_, err := svc.Login(context.Background(), "inactive@example.com", "long-enough")
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
