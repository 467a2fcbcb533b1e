// Package orders materializes accepted quotations into orders and tracks
// their execution and payment state. An order is a frozen copy: later changes
// to the quotation never reach it.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/internal/quotations"
	"github.com/vuminhhai/seaquote-backend/pkg/db"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/money"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Repo          Repository
	QuotationRepo quotations.Repository
	Tx            txRunner
	Now           func() time.Time
}

// Service orchestrates order materialization and progression.
type Service struct {
	repo          Repository
	quotationRepo quotations.Repository
	tx            txRunner
	now           func() time.Time
}

// NewService builds an orders service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.QuotationRepo == nil {
		return nil, errors.New("quotation repo is required")
	}
	if params.Tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Service{
		repo:          params.Repo,
		quotationRepo: params.QuotationRepo,
		tx:            params.Tx,
		now:           params.Now,
	}, nil
}

// CreateFromQuotation materializes the order for an accepted quotation,
// copying totals and breakdown lines verbatim. The unique index on the
// quotation id is the 1:1 guard: under concurrent accepts the second insert
// fails and is surfaced as a duplicate order, never as a second row.
func (s *Service) CreateFromQuotation(ctx context.Context, quotationID uuid.UUID) (*models.Order, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find quotation")
	}
	if quotation == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quotation not found")
	}
	if quotation.Status != enums.QuoteStatusAccepted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quotation %s is %s, only accepted quotations produce orders", quotation.QuoteCode, quotation.Status))
	}

	code, err := s.nextOrderCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &models.Order{
		OrderCode:       code,
		QuotationID:     quotation.ID,
		CustomerID:      quotation.CustomerID,
		EmployeeID:      quotation.EmployeeID,
		ServiceType:     quotation.ServiceType,
		Status:          enums.OrderStatusPending,
		Payment:         enums.PaymentStatusUnpaid,
		BasePrice:       quotation.BasePrice,
		TotalSurcharges: quotation.TotalSurcharges,
		TotalDiscounts:  quotation.TotalDiscounts,
		Subtotal:        quotation.Subtotal,
		TaxAmount:       quotation.TaxAmount,
		FinalAmount:     quotation.FinalAmount,
		PaidAmount:      money.Zero,
		Currency:        quotation.Currency,
		ServiceData:     quotation.ServiceInputData,
		CustomerNotes:   quotation.CustomerNotes,
		OrderDate:       now,
		Items:           copyItems(quotation.Items),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_orders_quotation_id") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDuplicateOrder, err,
				fmt.Sprintf("quotation %s already has an order", quotation.QuoteCode))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

// statusTransitions maps each order status to the states it may move to.
var statusTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed:  {enums.OrderStatusInProgress, enums.OrderStatusCancelled},
	enums.OrderStatusInProgress: {enums.OrderStatusCompleted, enums.OrderStatusCancelled},
}

// UpdateStatus advances an order along its execution states, stamping the
// matching timestamp.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	order, err := s.mustFind(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(order.Status, next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order %s cannot move from %s to %s", order.OrderCode, order.Status, next))
	}

	now := s.now().UTC()
	order.Status = next
	switch next {
	case enums.OrderStatusConfirmed:
		order.ConfirmedAt = &now
	case enums.OrderStatusCompleted:
		order.CompletedAt = &now
	case enums.OrderStatusCancelled:
		order.CancelledAt = &now
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return order, nil
}

// RecordPayment adds a received amount and rolls the payment status forward.
func (s *Service) RecordPayment(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*models.Order, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	order, err := s.mustFind(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order %s is cancelled", order.OrderCode))
	}

	order.PaidAmount = money.Round2(order.PaidAmount.Add(amount))
	switch {
	case order.PaidAmount.GreaterThanOrEqual(order.FinalAmount):
		order.Payment = enums.PaymentStatusPaid
	case order.PaidAmount.IsPositive():
		order.Payment = enums.PaymentStatusPartial
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}
	return order, nil
}

// Get returns an order, enforcing ownership when a customer id is supplied.
func (s *Service) Get(ctx context.Context, orderID uuid.UUID, customerID *uuid.UUID) (*models.Order, error) {
	order, err := s.mustFind(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if customerID != nil && order.CustomerID != *customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}
	return order, nil
}

// List returns orders matching the query.
func (s *Service) List(ctx context.Context, params ListOrdersQuery) ([]models.Order, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *Service) mustFind(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *Service) nextOrderCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", s.now().UTC().Format("20060102"))
	count, err := s.repo.CountForDay(ctx, prefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next order code")
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func copyItems(items []models.QuotationItem) []models.OrderItem {
	copied := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		copied = append(copied, models.OrderItem{
			Category:     item.Category,
			Name:         item.Name,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			TotalPrice:   item.TotalPrice,
			DisplayOrder: item.DisplayOrder,
		})
	}
	return copied
}
