package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/api/validators"
	"github.com/vuminhhai/seaquote-backend/internal/rates"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// RatesService is the slice of the rates service the admin endpoints need.
type RatesService interface {
	CreateRate(ctx context.Context, input rates.CreateRateInput) (*models.RateTable, error)
	UpdateRate(ctx context.Context, input rates.UpdateRateInput) (*models.RateTable, error)
	DeactivateRate(ctx context.Context, id uuid.UUID) (*models.RateTable, error)
	ListRates(ctx context.Context, params rates.ListRatesQuery) ([]models.RateTable, error)
}

type createRateBody struct {
	ServiceType string  `json:"service_type" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	FromLoc     *string `json:"from_loc,omitempty"`
	ToLoc       *string `json:"to_loc,omitempty"`
	SizeClass   *string `json:"size_class,omitempty"`
	Rate        string  `json:"rate" validate:"required"`
	ValidFrom   string  `json:"valid_from" validate:"required"`
	ValidTo     *string `json:"valid_to,omitempty"`
}

// RateCreate inserts an override rate row.
func RateCreate(svc RatesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		var body createRateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceType, err := enums.ParseServiceType(body.ServiceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type"))
			return
		}
		category, err := enums.ParseRateCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rate category"))
			return
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(body.Rate))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rate must be a decimal string"))
			return
		}
		validFrom, err := time.Parse(time.RFC3339, body.ValidFrom)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "valid_from must be RFC3339"))
			return
		}
		var validTo *time.Time
		if body.ValidTo != nil {
			parsed, parseErr := time.Parse(time.RFC3339, *body.ValidTo)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "valid_to must be RFC3339"))
				return
			}
			validTo = &parsed
		}

		created, err := svc.CreateRate(r.Context(), rates.CreateRateInput{
			ServiceType: serviceType,
			Category:    category,
			FromLoc:     body.FromLoc,
			ToLoc:       body.ToLoc,
			SizeClass:   body.SizeClass,
			Rate:        rate,
			ValidFrom:   validFrom,
			ValidTo:     validTo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// RateUpdate applies a partial update to an override row.
func RateUpdate(svc RatesService, logg *logger.Logger) http.HandlerFunc {
	type updateRateBody struct {
		Rate     *string `json:"rate,omitempty"`
		IsActive *bool   `json:"is_active,omitempty"`
		ValidTo  *string `json:"valid_to,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		rateID, err := validators.ParseUUIDParam(r, "rateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateRateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := rates.UpdateRateInput{ID: rateID, IsActive: body.IsActive}
		if body.Rate != nil {
			parsed, parseErr := decimal.NewFromString(strings.TrimSpace(*body.Rate))
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rate must be a decimal string"))
				return
			}
			input.Rate = &parsed
		}
		if body.ValidTo != nil {
			parsed, parseErr := time.Parse(time.RFC3339, *body.ValidTo)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "valid_to must be RFC3339"))
				return
			}
			input.ValidTo = &parsed
		}

		updated, err := svc.UpdateRate(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// RateDeactivate retires an override row without deleting its history.
func RateDeactivate(svc RatesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		rateID, err := validators.ParseUUIDParam(r, "rateId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.DeactivateRate(r.Context(), rateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// RateList returns override rows for administration.
func RateList(svc RatesService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rates service unavailable"))
			return
		}

		params := rates.ListRatesQuery{
			ActiveOnly: r.URL.Query().Get("active") == "true",
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("service_type")); raw != "" {
			serviceType, parseErr := enums.ParseServiceType(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid service type filter"))
				return
			}
			params.ServiceType = &serviceType
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, parseErr := enums.ParseRateCategory(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid category filter"))
				return
			}
			params.Category = &category
		}

		list, err := svc.ListRates(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
