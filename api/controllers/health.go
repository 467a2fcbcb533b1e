package controllers

import (
	"context"
	"net/http"

	"github.com/vuminhhai/seaquote-backend/api/responses"
	"github.com/vuminhhai/seaquote-backend/pkg/config"
	"github.com/vuminhhai/seaquote-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SeaQuote-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP pinger, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SeaQuote-Env", cfg.App.Env)

		checks := map[string]string{"db": "ok", "redis": "ok"}
		healthy := true

		if dbP == nil {
			checks["db"] = "unconfigured"
			healthy = false
		} else if err := dbP.Ping(r.Context()); err != nil {
			checks["db"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "db readiness check failed", err)
			}
		}

		if redisP == nil {
			checks["redis"] = "unconfigured"
			healthy = false
		} else if err := redisP.Ping(r.Context()); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
			if logg != nil {
				logg.Error(r.Context(), "redis readiness check failed", err)
			}
		}

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, checks)
	}
}
