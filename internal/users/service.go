// Package users manages platform accounts and credential checks. Customers
// register themselves; employee and admin accounts are provisioned by admins.
package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/vuminhhai/seaquote-backend/pkg/auth"
	"github.com/vuminhhai/seaquote-backend/pkg/config"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/security"
)

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Repo     Repository
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Now      func() time.Time
}

// Service handles registration and login.
type Service struct {
	repo     Repository
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds a users service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     params.Repo,
		jwt:      params.JWT,
		password: params.Password,
		now:      now,
	}, nil
}

// RegisterInput captures a self-service customer registration.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    *string
	Company  *string
	Role     enums.UserRole
}

// Profile is the account projection returned to API clients.
type Profile struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	FullName  string         `json:"full_name"`
	Phone     *string        `json:"phone,omitempty"`
	Company   *string        `json:"company,omitempty"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

// LoginResult pairs the freshly minted token with the account profile.
type LoginResult struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// Register creates an account with a hashed credential.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	role := input.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user by email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        input.Phone,
		Company:      input.Company,
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	profile := toProfile(user)
	return &profile, nil
}

// Login verifies credentials and mints an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user by email")
	}
	if user == nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwt, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return &LoginResult{AccessToken: token, User: toProfile(user)}, nil
}

// Get returns the profile for an account id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	profile := toProfile(user)
	return &profile, nil
}

func toProfile(user *models.User) Profile {
	return Profile{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Company:   user.Company,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
