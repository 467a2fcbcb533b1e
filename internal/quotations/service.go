// Package quotations implements the quotation lifecycle: generation from a
// submitted service request, sending, the customer accept/reject decision,
// and the manual price override audit trail.
package quotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/internal/requests"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the quotations service.
type ServiceParams struct {
	Repo         Repository
	RequestRepo  requests.Repository
	Calculator   *pricing.Calculator
	Tx           txRunner
	Now          func() time.Time
	ValidityDays int
}

// Service orchestrates the quotation lifecycle.
type Service struct {
	repo         Repository
	requestRepo  requests.Repository
	calc         *pricing.Calculator
	tx           txRunner
	now          func() time.Time
	validityDays int
}

// NewService builds a quotations service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.RequestRepo == nil {
		return nil, errors.New("request repo is required")
	}
	if params.Calculator == nil {
		return nil, errors.New("calculator is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.ValidityDays <= 0 {
		params.ValidityDays = 30
	}
	return &Service{
		repo:         params.Repo,
		requestRepo:  params.RequestRepo,
		calc:         params.Calculator,
		tx:           params.Tx,
		now:          params.Now,
		validityDays: params.ValidityDays,
	}, nil
}

// Generate prices a submitted service request into a DRAFT quotation. The
// quotation and all of its item and step children are committed in one
// transaction together with the request's QUOTED mark; a failure anywhere
// leaves no partial breakdown behind.
func (s *Service) Generate(ctx context.Context, requestID uuid.UUID, employeeID uuid.UUID) (*models.Quotation, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find service request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
	}
	if request.Status != enums.RequestStatusSubmitted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("request %s is %s, only submitted requests can be quoted", request.RequestCode, request.Status))
	}

	result, err := s.calc.Calculate(ctx, request.ServiceType, []byte(request.ServiceData))
	if err != nil {
		return nil, err
	}

	code, err := s.nextQuoteCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	quotation := &models.Quotation{
		QuoteCode:        code,
		RequestID:        request.ID,
		CustomerID:       request.CustomerID,
		EmployeeID:       &employeeID,
		ServiceType:      request.ServiceType,
		Status:           enums.QuoteStatusDraft,
		BasePrice:        result.BasePrice,
		TotalSurcharges:  result.TotalSurcharges,
		TotalDiscounts:   result.TotalDiscounts,
		Subtotal:         result.Subtotal,
		TaxAmount:        result.TaxAmount,
		FinalAmount:      result.FinalAmount,
		Currency:         result.Currency,
		QuoteDate:        now,
		ValidUntil:       now.AddDate(0, 0, s.validityDays),
		ServiceInputData: request.ServiceData,
		Items:            buildItems(result),
		Steps:            buildSteps(result),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, quotation); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quotation")
		}
		request.Status = enums.RequestStatusQuoted
		request.QuotedAt = &now
		if err := s.requestRepo.WithTx(tx).Update(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark request quoted")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

// Send moves a DRAFT quotation to SENT, freezing its monetary fields.
func (s *Service) Send(ctx context.Context, quotationID uuid.UUID) (*models.Quotation, error) {
	quotation, err := s.mustFind(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Status != enums.QuoteStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s, only drafts can be sent", quotation.QuoteCode, quotation.Status))
	}

	now := s.now().UTC()
	quotation.Status = enums.QuoteStatusSent
	quotation.SentAt = &now
	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send quotation")
	}
	return quotation, nil
}

// Accept records the customer's acceptance. It requires SENT state, an
// unexpired validity window and the owning customer; an elapsed window flips
// the quotation to EXPIRED and reports the expiry distinctly from a wrong
// state.
func (s *Service) Accept(ctx context.Context, quotationID, customerID uuid.UUID, notes *string) (*models.Quotation, error) {
	quotation, err := s.ownedQuotation(ctx, quotationID, customerID)
	if err != nil {
		return nil, err
	}
	if quotation.Status != enums.QuoteStatusSent {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s, only sent quotations can be accepted", quotation.QuoteCode, quotation.Status))
	}

	now := s.now().UTC()
	if now.After(quotation.ValidUntil) {
		quotation.Status = enums.QuoteStatusExpired
		if err := s.repo.Update(ctx, quotation); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire quotation")
		}
		return nil, pkgerrors.New(pkgerrors.CodeQuoteExpired,
			fmt.Sprintf("quotation %s expired on %s", quotation.QuoteCode, quotation.ValidUntil.Format(time.RFC3339)))
	}

	response := enums.CustomerResponseAccepted
	quotation.Status = enums.QuoteStatusAccepted
	quotation.CustomerResponse = &response
	quotation.CustomerResponseDate = &now
	quotation.CustomerNotes = notes
	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept quotation")
	}
	return quotation, nil
}

// Reject records the customer's rejection. Ownership is required; the prior
// state is not, rejection is always available as an escape hatch.
func (s *Service) Reject(ctx context.Context, quotationID, customerID uuid.UUID, notes *string) (*models.Quotation, error) {
	quotation, err := s.ownedQuotation(ctx, quotationID, customerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	response := enums.CustomerResponseRejected
	quotation.Status = enums.QuoteStatusRejected
	quotation.CustomerResponse = &response
	quotation.CustomerResponseDate = &now
	quotation.CustomerNotes = notes
	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject quotation")
	}
	return quotation, nil
}

// OverridePriceInput captures a manual price correction on a draft.
type OverridePriceInput struct {
	QuotationID uuid.UUID
	EmployeeID  uuid.UUID
	NewPrice    decimal.Decimal
	Reason      string
}

// OverridePrice replaces the computed final amount on a DRAFT quotation,
// keeping the original amount and the reason for the audit trail. Sent
// quotations are immutable.
func (s *Service) OverridePrice(ctx context.Context, input OverridePriceInput) (*models.Quotation, error) {
	if !input.NewPrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "override price must be positive")
	}
	if input.Reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "override reason is required")
	}

	quotation, err := s.mustFind(ctx, input.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Status != enums.QuoteStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s, only drafts can be overridden", quotation.QuoteCode, quotation.Status))
	}

	if quotation.OriginalCalculatedPrice == nil {
		original := quotation.FinalAmount
		quotation.OriginalCalculatedPrice = &original
	}
	quotation.FinalAmount = money.Round2(input.NewPrice)
	quotation.PriceOverridden = true
	quotation.OverrideReason = &input.Reason
	quotation.EmployeeID = &input.EmployeeID
	if err := s.repo.Update(ctx, quotation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "override quotation price")
	}
	return quotation, nil
}

// InternalView returns the staff projection of a quotation.
func (s *Service) InternalView(ctx context.Context, quotationID uuid.UUID) (*InternalView, error) {
	quotation, err := s.mustFind(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	view := ToInternalView(quotation)
	return &view, nil
}

// CustomerView returns the customer-safe projection, enforcing ownership.
func (s *Service) CustomerView(ctx context.Context, quotationID, customerID uuid.UUID) (*CustomerView, error) {
	quotation, err := s.ownedQuotation(ctx, quotationID, customerID)
	if err != nil {
		return nil, err
	}
	view := ToCustomerView(quotation, s.now().UTC())
	return &view, nil
}

// ListForCustomer returns the customer-safe projections of the customer's
// quotations, drafts excluded: a draft is not yet an offer.
func (s *Service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]CustomerView, error) {
	rows, err := s.repo.List(ctx, ListQuotationsQuery{CustomerID: &customerID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	now := s.now().UTC()
	views := make([]CustomerView, 0, len(rows))
	for i := range rows {
		if rows[i].Status == enums.QuoteStatusDraft {
			continue
		}
		views = append(views, ToCustomerView(&rows[i], now))
	}
	return views, nil
}

// List returns quotations matching the query, for staff listings.
func (s *Service) List(ctx context.Context, params ListQuotationsQuery) ([]models.Quotation, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotations")
	}
	return rows, nil
}

// Find returns a quotation by id, for callers that need the model itself.
func (s *Service) Find(ctx context.Context, quotationID uuid.UUID) (*models.Quotation, error) {
	return s.mustFind(ctx, quotationID)
}

func (s *Service) mustFind(ctx context.Context, quotationID uuid.UUID) (*models.Quotation, error) {
	quotation, err := s.repo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find quotation")
	}
	if quotation == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
	}
	return quotation, nil
}

func (s *Service) ownedQuotation(ctx context.Context, quotationID, customerID uuid.UUID) (*models.Quotation, error) {
	quotation, err := s.mustFind(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "quotation belongs to another customer")
	}
	return quotation, nil
}

func (s *Service) nextQuoteCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("QT-%s-", s.now().UTC().Format("20060102"))
	count, err := s.repo.CountForDay(ctx, prefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next quote code")
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func buildItems(result *pricing.Result) []models.QuotationItem {
	items := make([]models.QuotationItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, models.QuotationItem{
			Category:     item.Category,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			DisplayOrder: item.DisplayOrder,
		})
	}
	return items
}

func buildSteps(result *pricing.Result) []models.PriceCalculation {
	steps := make([]models.PriceCalculation, 0, len(result.Steps))
	for _, step := range result.Steps {
		steps = append(steps, models.PriceCalculation{
			Step:            step.Step,
			ComponentName:   step.ComponentName,
			Formula:         step.Formula,
			InputValues:     step.InputValues,
			BaseValue:       step.BaseValue,
			RateApplied:     step.RateApplied,
			Multiplier:      step.Multiplier,
			CalculatedValue: step.CalculatedValue,
			Notes:           step.Notes,
			StepOrder:       step.StepOrder,
		})
	}
	return steps
}
