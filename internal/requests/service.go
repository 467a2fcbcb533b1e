// Package requests implements service request intake: customers draft a
// request with a type-specific payload, submit it, and employees later price
// it into a quotation.
package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

// ServiceParams groups dependencies for the requests service.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

// Service orchestrates service request intake.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a requests service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Service{repo: params.Repo, now: params.Now}, nil
}

// CreateDraftInput captures a new service request.
type CreateDraftInput struct {
	CustomerID  uuid.UUID
	ServiceType enums.ServiceType
	FullName    string
	ContactInfo string
	Notes       *string
	ServiceData []byte
}

// CreateDraft stores a draft request. The payload is decoded up front so a
// request that can never be priced is rejected at intake, not at quoting time.
func (s *Service) CreateDraft(ctx context.Context, input CreateDraftInput) (*models.ServiceRequest, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if !input.ServiceType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
	if input.FullName == "" || input.ContactInfo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name and contact info are required")
	}
	if err := validatePayload(input.ServiceType, input.ServiceData); err != nil {
		return nil, err
	}

	code, err := s.nextRequestCode(ctx)
	if err != nil {
		return nil, err
	}
	request := &models.ServiceRequest{
		RequestCode: code,
		CustomerID:  input.CustomerID,
		ServiceType: input.ServiceType,
		Status:      enums.RequestStatusDraft,
		FullName:    input.FullName,
		ContactInfo: input.ContactInfo,
		Notes:       input.Notes,
		ServiceData: string(input.ServiceData),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service request")
	}
	return request, nil
}

// Submit moves a draft to SUBMITTED, making it visible to the quoting desk.
func (s *Service) Submit(ctx context.Context, requestID, customerID uuid.UUID) (*models.ServiceRequest, error) {
	request, err := s.ownedRequest(ctx, requestID, customerID)
	if err != nil {
		return nil, err
	}
	if request.Status != enums.RequestStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("request %s is %s, only drafts can be submitted", request.RequestCode, request.Status))
	}

	now := s.now().UTC()
	request.Status = enums.RequestStatusSubmitted
	request.SubmittedAt = &now
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit service request")
	}
	return request, nil
}

// Get returns a request if the caller owns it or is staff.
func (s *Service) Get(ctx context.Context, requestID uuid.UUID, customerID *uuid.UUID) (*models.ServiceRequest, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find service request")
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
	}
	if customerID != nil && request.CustomerID != *customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "request belongs to another customer")
	}
	return request, nil
}

// List returns requests matching the query.
func (s *Service) List(ctx context.Context, params ListRequestsQuery) ([]models.ServiceRequest, error) {
	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list service requests")
	}
	return rows, nil
}

func (s *Service) ownedRequest(ctx context.Context, requestID, customerID uuid.UUID) (*models.ServiceRequest, error) {
	return s.Get(ctx, requestID, &customerID)
}

func (s *Service) nextRequestCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("REQ-%s-", s.now().UTC().Format("20060102"))
	count, err := s.repo.CountForDay(ctx, prefix)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next request code")
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func validatePayload(serviceType enums.ServiceType, payload []byte) error {
	switch serviceType {
	case enums.ServiceTypeFreightForwarding:
		_, err := pricing.DecodeLogisticsRequest(payload)
		return err
	case enums.ServiceTypeShippingAgency:
		_, err := pricing.DecodeAgencyRequest(payload)
		return err
	case enums.ServiceTypeChartering:
		_, err := pricing.DecodeCharteringRequest(payload)
		return err
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid service type")
	}
}
