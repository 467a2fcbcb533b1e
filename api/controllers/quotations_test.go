package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuminhhai/seaquote-backend/api/middleware"
	"github.com/vuminhhai/seaquote-backend/internal/quotations"
	"github.com/vuminhhai/seaquote-backend/pkg/db/models"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
)

type stubQuotationsService struct {
	quotation *models.Quotation
	view      *quotations.CustomerView
}

func (s *stubQuotationsService) Generate(context.Context, uuid.UUID, uuid.UUID) (*models.Quotation, error) {
	return s.quotation, nil
}

func (s *stubQuotationsService) Send(context.Context, uuid.UUID) (*models.Quotation, error) {
	return s.quotation, nil
}

func (s *stubQuotationsService) Accept(context.Context, uuid.UUID, uuid.UUID, *string) (*models.Quotation, error) {
	return s.quotation, nil
}

func (s *stubQuotationsService) Reject(context.Context, uuid.UUID, uuid.UUID, *string) (*models.Quotation, error) {
	return s.quotation, nil
}

func (s *stubQuotationsService) OverridePrice(context.Context, quotations.OverridePriceInput) (*models.Quotation, error) {
	return s.quotation, nil
}

func (s *stubQuotationsService) InternalView(context.Context, uuid.UUID) (*quotations.InternalView, error) {
	view := quotations.ToInternalView(s.quotation)
	return &view, nil
}

func (s *stubQuotationsService) CustomerView(context.Context, uuid.UUID, uuid.UUID) (*quotations.CustomerView, error) {
	return s.view, nil
}

func (s *stubQuotationsService) ListForCustomer(context.Context, uuid.UUID) ([]quotations.CustomerView, error) {
	if s.view == nil {
		return nil, nil
	}
	return []quotations.CustomerView{*s.view}, nil
}

func (s *stubQuotationsService) List(context.Context, quotations.ListQuotationsQuery) ([]models.Quotation, error) {
	return []models.Quotation{*s.quotation}, nil
}

func pricedQuotation() *models.Quotation {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	return &models.Quotation{
		ID:              uuid.New(),
		QuoteCode:       "QT-2026-000042",
		RequestID:       uuid.New(),
		CustomerID:      uuid.New(),
		ServiceType:     enums.ServiceTypeShippingAgency,
		Status:          enums.QuoteStatusSent,
		BasePrice:       decimal.RequireFromString("1800.00"),
		TotalSurcharges: decimal.RequireFromString("120.00"),
		TotalDiscounts:  decimal.RequireFromString("0.00"),
		Subtotal:        decimal.RequireFromString("1920.00"),
		TaxAmount:       decimal.RequireFromString("192.00"),
		FinalAmount:     decimal.RequireFromString("2112.00"),
		Currency:        enums.CurrencyUSD,
		QuoteDate:       now,
		ValidUntil:      now.AddDate(0, 0, 14),
		Items: []models.QuotationItem{{
			Category:   enums.ItemCategoryBasePrice,
			Name:       "Agency fee",
			TotalPrice: decimal.RequireFromString("1800.00"),
		}},
		Steps: []models.PriceCalculation{{
			Step:            "base",
			ComponentName:   "agency_fee",
			Formula:         "grt_band(grt)",
			CalculatedValue: decimal.RequireFromString("1800.00"),
		}},
	}
}

func customerRequest(method, url string, quotationID uuid.UUID, customerID uuid.UUID, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rc := chi.NewRouteContext()
	rc.URLParams.Add("quotationId", quotationID.String())
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rc)
	ctx = middleware.WithUserID(ctx, customerID.String())
	ctx = middleware.WithRole(ctx, string(enums.UserRoleCustomer))
	return req.WithContext(ctx)
}

// Keys that must never appear in a customer-facing quotation payload.
var internalOnlyKeys = []string{
	"base_price", "total_surcharges", "total_discounts", "subtotal",
	"tax_amount", "items", "steps", "price_overridden", "original_calculated_price",
}

func TestQuotationCustomerDetailOmitsInternalFields(t *testing.T) {
	q := pricedQuotation()
	view := quotations.ToCustomerView(q, q.QuoteDate)
	svc := &stubQuotationsService{quotation: q, view: &view}

	req := customerRequest(http.MethodGet, "/api/v1/quotations/"+q.ID.String(), q.ID, q.CustomerID, "")
	rec := httptest.NewRecorder()
	QuotationCustomerDetail(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Contains(t, envelope.Data, "final_amount")
	assert.Contains(t, envelope.Data, "valid_until")
	for _, key := range internalOnlyKeys {
		assert.NotContains(t, envelope.Data, key)
	}
}

func TestQuotationAcceptRespondsWithSanitizedView(t *testing.T) {
	q := pricedQuotation()
	svc := &stubQuotationsService{quotation: q}

	req := customerRequest(http.MethodPost, "/api/v1/quotations/"+q.ID.String()+"/accept", q.ID, q.CustomerID, `{"notes":"please proceed"}`)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	QuotationAccept(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Contains(t, envelope.Data, "quote_code")
	for _, key := range internalOnlyKeys {
		assert.NotContains(t, envelope.Data, key)
	}
}

func TestQuotationInternalDetailIncludesBreakdown(t *testing.T) {
	q := pricedQuotation()
	svc := &stubQuotationsService{quotation: q}

	req := customerRequest(http.MethodGet, "/api/staff/v1/quotations/"+q.ID.String(), q.ID, uuid.New(), "")
	rec := httptest.NewRecorder()
	QuotationInternalDetail(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data quotations.InternalView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, q.QuoteCode, envelope.Data.QuoteCode)
	assert.True(t, envelope.Data.Subtotal.Equal(q.Subtotal))
	require.Len(t, envelope.Data.Items, 1)
	require.Len(t, envelope.Data.Steps, 1)
	assert.Equal(t, "agency_fee", envelope.Data.Steps[0].ComponentName)
}

func TestQuotationGenerateRejectsBadRequestID(t *testing.T) {
	svc := &stubQuotationsService{quotation: pricedQuotation()}

	req := customerRequest(http.MethodPost, "/api/staff/v1/quotations/generate", uuid.New(), uuid.New(), `{"request_id":"not-a-uuid"}`)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	QuotationGenerate(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
