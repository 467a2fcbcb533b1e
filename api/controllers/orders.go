package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/api/validators"
	"github.com/vuminhhai/seaquote-backend/internal/orders"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// OrdersService is the slice of the orders service the HTTP layer needs.
type OrdersService interface {
	CreateFromQuotation(ctx context.Context, quotationID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
	RecordPayment(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID, customerID *uuid.UUID) (*models.Order, error)
	List(ctx context.Context, params orders.ListOrdersQuery) ([]models.Order, error)
}

// OrderMaterialize turns an accepted quotation into an order.
func OrderMaterialize(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		quotationID, err := validators.ParseUUIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateFromQuotation(r.Context(), quotationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrderUpdateStatus advances the fulfilment status.
func OrderUpdateStatus(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	type statusBody struct {
		Status string `json:"status" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body statusBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderRecordPayment registers a received payment against the order.
func OrderRecordPayment(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	type paymentBody struct {
		Amount string `json:"amount" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body paymentBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal string"))
			return
		}

		order, err := svc.RecordPayment(r.Context(), orderID, amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderInternalList returns full orders for staff.
func OrderInternalList(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		params := orders.ListOrdersQuery{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseOrderStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			params.Status = &status
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// OrderInternalDetail returns one full order for staff.
func OrderInternalDetail(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrderCustomerList returns sanitized orders for the authenticated customer.
func OrderCustomerList(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), orders.ListOrdersQuery{CustomerID: &customerID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]orders.CustomerView, 0, len(list))
		for i := range list {
			views = append(views, orders.ToCustomerView(&list[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// OrderCustomerDetail returns one sanitized order to its owner.
func OrderCustomerDetail(svc OrdersService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID, &customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.ToCustomerView(order))
	}
}
