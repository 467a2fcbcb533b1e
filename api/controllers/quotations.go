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
	"github.com/vuminhhai/seaquote-backend/internal/quotations"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// QuotationsService is the slice of the quotations service the HTTP layer needs.
type QuotationsService interface {
	Generate(ctx context.Context, requestID, employeeID uuid.UUID) (*models.Quotation, error)
	Send(ctx context.Context, quotationID uuid.UUID) (*models.Quotation, error)
	Accept(ctx context.Context, quotationID, customerID uuid.UUID, notes *string) (*models.Quotation, error)
	Reject(ctx context.Context, quotationID, customerID uuid.UUID, notes *string) (*models.Quotation, error)
	OverridePrice(ctx context.Context, input quotations.OverridePriceInput) (*models.Quotation, error)
	InternalView(ctx context.Context, quotationID uuid.UUID) (*quotations.InternalView, error)
	CustomerView(ctx context.Context, quotationID, customerID uuid.UUID) (*quotations.CustomerView, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]quotations.CustomerView, error)
	List(ctx context.Context, params quotations.ListQuotationsQuery) ([]models.Quotation, error)
}

// QuotationGenerate prices a submitted request into a draft quotation.
func QuotationGenerate(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	type generateBody struct {
		RequestID string `json:"request_id" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		employeeID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body generateBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := uuid.Parse(strings.TrimSpace(body.RequestID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "request_id must be a uuid"))
			return
		}

		quotation, err := svc.Generate(r.Context(), requestID, employeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, quotations.ToInternalView(quotation))
	}
}

// QuotationSend releases a draft quotation to the customer.
func QuotationSend(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		quotationID, err := validators.ParseUUIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotation, err := svc.Send(r.Context(), quotationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotations.ToInternalView(quotation))
	}
}

// QuotationOverride replaces the computed price on a draft quotation.
func QuotationOverride(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	type overrideBody struct {
		NewPrice string `json:"new_price" validate:"required"`
		Reason   string `json:"reason" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		employeeID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotationID, err := validators.ParseUUIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body overrideBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		newPrice, err := decimal.NewFromString(strings.TrimSpace(body.NewPrice))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "new_price must be a decimal string"))
			return
		}

		quotation, err := svc.OverridePrice(r.Context(), quotations.OverridePriceInput{
			QuotationID: quotationID,
			EmployeeID:  employeeID,
			NewPrice:    newPrice,
			Reason:      body.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quotations.ToInternalView(quotation))
	}
}

// QuotationInternalDetail returns the full breakdown for staff.
func QuotationInternalDetail(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		quotationID, err := validators.ParseUUIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.InternalView(r.Context(), quotationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// QuotationInternalList returns full quotations for staff, optionally filtered by status.
func QuotationInternalList(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		params := quotations.ListQuotationsQuery{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseQuoteStatus(raw)
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

		views := make([]quotations.InternalView, 0, len(list))
		for i := range list {
			views = append(views, quotations.ToInternalView(&list[i]))
		}
		responses.WriteSuccess(w, views)
	}
}

// QuotationCustomerList returns sanitized quotations for the authenticated customer.
func QuotationCustomerList(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForCustomer(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// QuotationCustomerDetail returns one sanitized quotation to its owner.
func QuotationCustomerDetail(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quotationID, err := validators.ParseUUIDParam(r, "quotationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.CustomerView(r.Context(), quotationID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type decisionBody struct {
	Notes *string `json:"notes,omitempty"`
}

// QuotationAccept records a customer acceptance.
func QuotationAccept(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotationDecision(svc, logg, w, r, svc.Accept)
	}
}

// QuotationReject records a customer rejection.
func QuotationReject(svc QuotationsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quotationDecision(svc, logg, w, r, svc.Reject)
	}
}

func quotationDecision(
	svc QuotationsService,
	logg *logger.Logger,
	w http.ResponseWriter,
	r *http.Request,
	decide func(context.Context, uuid.UUID, uuid.UUID, *string) (*models.Quotation, error),
) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotations service unavailable"))
		return
	}

	customerID, err := actorID(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	quotationID, err := validators.ParseUUIDParam(r, "quotationId")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	var body decisionBody
	if r.ContentLength > 0 {
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
	}

	quotation, err := decide(r.Context(), quotationID, customerID, body.Notes)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	// Decisions come from customers, so the response stays sanitized.
	view := quotations.ToCustomerView(quotation, time.Now())
	responses.WriteSuccess(w, view)
}
