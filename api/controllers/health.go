package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/harborcommerce/backoffice-backend/api/responses"
	"github.com/harborcommerce/backoffice-backend/pkg/config"
	pkgerrors "github.com/harborcommerce/backoffice-backend/pkg/errors"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
)

// Probe is a named readiness dependency. The handler pings every probe so
// one degraded dependency does not hide another in the logs.
type Probe struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, probes ...Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backoffice-Env", cfg.App.Env)

		var combined error
		failed := make([]string, 0, len(probes))
		for _, probe := range probes {
			if probe.Ping == nil {
				continue
			}
			if err := probe.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
				failed = append(failed, probe.Name)
			}
		}

		if combined != nil {
			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithField(ctx, "failed_dependencies", failed)
			}
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
