package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/vuminhhai/seaquote-backend/api/middleware"
	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/api/validators"
	"github.com/vuminhhai/seaquote-backend/internal/users"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// AccountService is the slice of the users service the auth endpoints need.
type AccountService interface {
	Register(ctx context.Context, input users.RegisterInput) (*users.Profile, error)
	Login(ctx context.Context, email, password string) (*users.LoginResult, error)
	Get(ctx context.Context, id uuid.UUID) (*users.Profile, error)
}

type registerBody struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
}

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthRegister creates a customer account.
func AuthRegister(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var body registerBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Register(r.Context(), users.RegisterInput{
			Email:    body.Email,
			Password: body.Password,
			FullName: body.FullName,
			Phone:    body.Phone,
			Company:  body.Company,
			Role:     enums.UserRoleCustomer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// AuthLogin exchanges credentials for an access token.
func AuthLogin(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var body loginBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// Me returns the authenticated account's profile.
func Me(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// AdminProvisionUser creates an account with an explicit role.
func AdminProvisionUser(svc AccountService, logg *logger.Logger) http.HandlerFunc {
	type provisionBody struct {
		registerBody
		Role string `json:"role" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account service unavailable"))
			return
		}

		var body provisionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		profile, err := svc.Register(r.Context(), users.RegisterInput{
			Email:    body.Email,
			Password: body.Password,
			FullName: body.FullName,
			Phone:    body.Phone,
			Company:  body.Company,
			Role:     role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

// actorID pulls the authenticated user id out of the request context.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed user id")
	}
	return id, nil
}

func actorIsStaff(r *http.Request) bool {
	return enums.UserRole(middleware.RoleFromContext(r.Context())).IsStaff()
}
