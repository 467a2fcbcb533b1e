package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/api/validators"
	"github.com/vuminhhai/seaquote-backend/internal/requests"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

// RequestsService is the slice of the requests service the HTTP layer needs.
type RequestsService interface {
	CreateDraft(ctx context.Context, input requests.CreateDraftInput) (*models.ServiceRequest, error)
	Submit(ctx context.Context, requestID, customerID uuid.UUID) (*models.ServiceRequest, error)
	Get(ctx context.Context, requestID uuid.UUID, customerID *uuid.UUID) (*models.ServiceRequest, error)
	List(ctx context.Context, params requests.ListRequestsQuery) ([]models.ServiceRequest, error)
}

type createRequestBody struct {
	ServiceType string          `json:"service_type" validate:"required"`
	FullName    string          `json:"full_name" validate:"required"`
	ContactInfo string          `json:"contact_info" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
	ServiceData json.RawMessage `json:"service_data" validate:"required"`
}

// RequestCreate stores a draft service request for the authenticated customer.
func RequestCreate(svc RequestsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRequestBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		serviceType, err := enums.ParseServiceType(body.ServiceType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid service type"))
			return
		}

		request, err := svc.CreateDraft(r.Context(), requests.CreateDraftInput{
			CustomerID:  customerID,
			ServiceType: serviceType,
			FullName:    body.FullName,
			ContactInfo: body.ContactInfo,
			Notes:       body.Notes,
			ServiceData: body.ServiceData,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// RequestSubmit moves a draft request into the quoting queue.
func RequestSubmit(svc RequestsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		customerID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Submit(r.Context(), requestID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// RequestDetail returns one request; staff can see any, customers only their own.
func RequestDetail(svc RequestsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var owner *uuid.UUID
		if !actorIsStaff(r) {
			owner = &actor
		}

		request, err := svc.Get(r.Context(), requestID, owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// RequestList returns the caller's requests; staff see the full queue.
func RequestList(svc RequestsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "requests service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := requests.ListRequestsQuery{}
		if !actorIsStaff(r) {
			params.CustomerID = &actor
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseRequestStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			params.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("service_type")); raw != "" {
			serviceType, parseErr := enums.ParseServiceType(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid service type filter"))
				return
			}
			params.ServiceType = &serviceType
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
