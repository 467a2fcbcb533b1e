package requests

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	pkgerrors "github.com/vuminhhai/seaquote-backend/pkg/errors"
)

type stubRepo struct {
	requests map[uuid.UUID]*models.ServiceRequest
}

func newStubRepo() *stubRepo {
	return &stubRepo{requests: map[uuid.UUID]*models.ServiceRequest{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, request *models.ServiceRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	s.requests[request.ID] = request
	return nil
}

func (s *stubRepo) Update(ctx context.Context, request *models.ServiceRequest) error {
	s.requests[request.ID] = request
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	return s.requests[id], nil
}

func (s *stubRepo) List(ctx context.Context, params ListRequestsQuery) ([]models.ServiceRequest, error) {
	var rows []models.ServiceRequest
	for _, request := range s.requests {
		if params.CustomerID != nil && request.CustomerID != *params.CustomerID {
			continue
		}
		rows = append(rows, *request)
	}
	return rows, nil
}

func (s *stubRepo) CountForDay(ctx context.Context, prefix string) (int64, error) {
	var count int64
	for _, request := range s.requests {
		if strings.HasPrefix(request.RequestCode, prefix) {
			count++
		}
	}
	return count, nil
}

var testNow = time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	svc, err := NewService(ServiceParams{
		Repo: repo,
		Now:  func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatal(err)
	}
	return svc, repo
}

func draftInput(customerID uuid.UUID) CreateDraftInput {
	return CreateDraftInput{
		CustomerID:  customerID,
		ServiceType: enums.ServiceTypeFreightForwarding,
		FullName:    "Le Thi Mai",
		ContactInfo: "mai@example.com",
		ServiceData: []byte(`{"loading_port":"HAIPHONG","discharging_port":"SINGAPORE","container_20":2,"container_40":1}`),
	}
}

func TestCreateDraftSequencesCodes(t *testing.T) {
	svc, _ := newTestService(t)
	customerID := uuid.New()

	first, err := svc.CreateDraft(context.Background(), draftInput(customerID))
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateDraft(context.Background(), draftInput(customerID))
	if err != nil {
		t.Fatal(err)
	}

	if first.RequestCode != "REQ-20260410-0001" || second.RequestCode != "REQ-20260410-0002" {
		t.Fatalf("codes = %s, %s", first.RequestCode, second.RequestCode)
	}
	if first.Status != enums.RequestStatusDraft {
		t.Fatalf("status = %s, want DRAFT", first.Status)
	}
}

func TestCreateDraftRejectsUnpriceablePayload(t *testing.T) {
	svc, _ := newTestService(t)
	input := draftInput(uuid.New())
	input.ServiceData = []byte(`{"container_20":2}`)

	if _, err := svc.CreateDraft(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestCreateDraftRejectsUnknownAgencyPort(t *testing.T) {
	svc, _ := newTestService(t)
	input := draftInput(uuid.New())
	input.ServiceType = enums.ServiceTypeShippingAgency
	input.ServiceData = []byte(`{"port_of_call":"DANANG","grt":8000,"dwt":15000,"loa":180,"arrival_date":"2026-05-01T08:00:00Z","departure_date":"2026-05-03T08:00:00Z"}`)

	if _, err := svc.CreateDraft(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestSubmitMovesDraftForward(t *testing.T) {
	svc, _ := newTestService(t)
	customerID := uuid.New()
	request, err := svc.CreateDraft(context.Background(), draftInput(customerID))
	if err != nil {
		t.Fatal(err)
	}

	submitted, err := svc.Submit(context.Background(), request.ID, customerID)
	if err != nil {
		t.Fatal(err)
	}
	if submitted.Status != enums.RequestStatusSubmitted || submitted.SubmittedAt == nil {
		t.Fatalf("submit result: status %s, submittedAt %v", submitted.Status, submitted.SubmittedAt)
	}

	if _, err := svc.Submit(context.Background(), request.ID, customerID); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("double submit: want state conflict, got %v", err)
	}
}

func TestSubmitEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	request, err := svc.CreateDraft(context.Background(), draftInput(uuid.New()))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(context.Background(), request.ID, uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
}

func TestListFiltersByCustomer(t *testing.T) {
	svc, _ := newTestService(t)
	mine := uuid.New()
	if _, err := svc.CreateDraft(context.Background(), draftInput(mine)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateDraft(context.Background(), draftInput(uuid.New())); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.List(context.Background(), ListRequestsQuery{CustomerID: &mine})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d requests, want 1", len(rows))
	}
}
