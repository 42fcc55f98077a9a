package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/bulkmandi/bulkmandi-backend/api/responses"
	"github.com/bulkmandi/bulkmandi-backend/pkg/config"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db"
	pkgerrors "github.com/bulkmandi/bulkmandi-backend/pkg/errors"
	"github.com/bulkmandi/bulkmandi-backend/pkg/logger"
	"github.com/bulkmandi/bulkmandi-backend/pkg/redis"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BulkMandi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the datasources the API cannot serve without.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		var probeErr error

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["db"] = err.Error()
				probeErr = multierr.Append(probeErr, fmt.Errorf("db: %w", err))
			} else {
				checks["db"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				probeErr = multierr.Append(probeErr, fmt.Errorf("redis: %w", err))
			} else {
				checks["redis"] = "ok"
			}
		}

		w.Header().Set("X-BulkMandi-Env", cfg.App.Env)
		if probeErr != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "dependency unavailable").WithDetails(checks)
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
