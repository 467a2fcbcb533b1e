// Package rates administers the override rate table consulted by the pricing
// engine ahead of its compiled defaults.
package rates

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

// ServiceParams groups dependencies for the rates service.
type ServiceParams struct {
	Repo Repository
}

// Service orchestrates rate table administration, and doubles as the pricing
// engine's override source.
type Service struct {
	repo Repository
}

// NewService builds a rates service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

var _ pricing.OverrideSource = (*Service)(nil)

// ActiveRate satisfies pricing.OverrideSource.
func (s *Service) ActiveRate(ctx context.Context, key pricing.RateKey, on time.Time) (decimal.Decimal, bool, error) {
	return s.repo.ActiveRate(ctx, key, on)
}

// CreateRateInput captures a new override row.
type CreateRateInput struct {
	ServiceType enums.ServiceType
	Category    enums.RateCategory
	FromLoc     *string
	ToLoc       *string
	SizeClass   *string
	Rate        decimal.Decimal
	ValidFrom   time.Time
	ValidTo     *time.Time
}

// CreateRate inserts an override row after validating the key and window.
func (s *Service) CreateRate(ctx context.Context, input CreateRateInput) (*models.RateTable, error) {
	if !input.ServiceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid rate category")
	}
	if !input.Rate.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must be positive")
	}
	if input.ValidTo != nil && input.ValidTo.Before(input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_to precedes valid_from")
	}
	if input.ValidFrom.IsZero() {
		input.ValidFrom = time.Now().UTC()
	}

	rate := &models.RateTable{
		ServiceType: input.ServiceType,
		Category:    input.Category,
		FromLoc:     input.FromLoc,
		ToLoc:       input.ToLoc,
		SizeClass:   input.SizeClass,
		Rate:        money.RoundRate(input.Rate),
		Currency:    enums.CurrencyUSD,
		IsActive:    true,
		ValidFrom:   input.ValidFrom,
		ValidTo:     input.ValidTo,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rate")
	}
	return rate, nil
}

// UpdateRateInput mutates an existing override row. Nil fields are untouched.
type UpdateRateInput struct {
	ID       uuid.UUID
	Rate     *decimal.Decimal
	IsActive *bool
	ValidTo  *time.Time
}

// UpdateRate applies a partial update to an override row.
func (s *Service) UpdateRate(ctx context.Context, input UpdateRateInput) (*models.RateTable, error) {
	rate, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rate")
	}
	if rate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rate not found")
	}

	if input.Rate != nil {
		if !input.Rate.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate must be positive")
		}
		rate.Rate = money.RoundRate(*input.Rate)
	}
	if input.IsActive != nil {
		rate.IsActive = *input.IsActive
	}
	if input.ValidTo != nil {
		if input.ValidTo.Before(rate.ValidFrom) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid_to precedes valid_from")
		}
		rate.ValidTo = input.ValidTo
	}

	if err := s.repo.Update(ctx, rate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rate")
	}
	return rate, nil
}

// DeactivateRate retires an override row without deleting its history.
func (s *Service) DeactivateRate(ctx context.Context, id uuid.UUID) (*models.RateTable, error) {
	inactive := false
	return s.UpdateRate(ctx, UpdateRateInput{ID: id, IsActive: &inactive})
}

// ListRates returns override rows matching the query.
func (s *Service) ListRates(ctx context.Context, params ListRatesQuery) ([]models.RateTable, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rates")
	}
	return rows, nil
}
