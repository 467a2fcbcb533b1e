package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vuminhhai/seaquote-backend/api/controllers"
	"github.com/vuminhhai/seaquote-backend/api/middleware"
	"github.com/vuminhhai/seaquote-backend/internal/pricing"
	"github.com/vuminhhai/seaquote-backend/pkg/config"
	"github.com/vuminhhai/seaquote-backend/pkg/db"
	"github.com/vuminhhai/seaquote-backend/pkg/enums"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
	"github.com/vuminhhai/seaquote-backend/pkg/redis"
)

// Services bundles the service layer handed to the router.
type Services struct {
	Accounts   controllers.AccountService
	Requests   controllers.RequestsService
	Quotations controllers.QuotationsService
	Orders     controllers.OrdersService
	Rates      controllers.RatesService
	Calculator *pricing.Calculator
}

// Pingers bundles the readiness probes.
type Pingers struct {
	DB    db.Pinger
	Redis redis.Pinger
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers Pingers,
	idempotency redis.IdempotencyStore,
	services Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers.DB, pingers.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Post("/estimates/agency", controllers.EstimateAgency(services.Calculator, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(services.Accounts, logg))
		r.Post("/login", controllers.AuthLogin(services.Accounts, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotency, logg))

		r.Get("/me", controllers.Me(services.Accounts, logg))

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", controllers.RequestCreate(services.Requests, logg))
			r.Get("/", controllers.RequestList(services.Requests, logg))
			r.Get("/{requestId}", controllers.RequestDetail(services.Requests, logg))
			r.Post("/{requestId}/submit", controllers.RequestSubmit(services.Requests, logg))
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", controllers.QuotationCustomerList(services.Quotations, logg))
			r.Get("/{quotationId}", controllers.QuotationCustomerDetail(services.Quotations, logg))
			r.Post("/{quotationId}/accept", controllers.QuotationAccept(services.Quotations, logg))
			r.Post("/{quotationId}/reject", controllers.QuotationReject(services.Quotations, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderCustomerList(services.Orders, logg))
			r.Get("/{orderId}", controllers.OrderCustomerDetail(services.Orders, logg))
		})
	})

	r.Route("/api/staff/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireStaff(logg))
		r.Use(middleware.Idempotency(idempotency, logg))

		r.Get("/requests", controllers.RequestList(services.Requests, logg))
		r.Get("/requests/{requestId}", controllers.RequestDetail(services.Requests, logg))

		r.Route("/quotations", func(r chi.Router) {
			r.Post("/generate", controllers.QuotationGenerate(services.Quotations, logg))
			r.Get("/", controllers.QuotationInternalList(services.Quotations, logg))
			r.Get("/{quotationId}", controllers.QuotationInternalDetail(services.Quotations, logg))
			r.Post("/{quotationId}/send", controllers.QuotationSend(services.Quotations, logg))
			r.Post("/{quotationId}/override", controllers.QuotationOverride(services.Quotations, logg))
			r.Post("/{quotationId}/order", controllers.OrderMaterialize(services.Orders, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderInternalList(services.Orders, logg))
			r.Get("/{orderId}", controllers.OrderInternalDetail(services.Orders, logg))
			r.Post("/{orderId}/status", controllers.OrderUpdateStatus(services.Orders, logg))
			r.Post("/{orderId}/payments", controllers.OrderRecordPayment(services.Orders, logg))
		})

		r.Post("/estimates/agency/disbursement", controllers.EstimateAgencyDisbursement(services.Calculator, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

		r.Post("/users", controllers.AdminProvisionUser(services.Accounts, logg))

		r.Route("/rates", func(r chi.Router) {
			r.Get("/", controllers.RateList(services.Rates, logg))
			r.Post("/", controllers.RateCreate(services.Rates, logg))
			r.Patch("/{rateId}", controllers.RateUpdate(services.Rates, logg))
			r.Post("/{rateId}/deactivate", controllers.RateDeactivate(services.Rates, logg))
		})
	})

	return r
}
