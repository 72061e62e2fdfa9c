package controllers

import (
	"context"
	"net/http"

	"github.com/ozanakin/carsi-storefront/api/responses"
	"github.com/ozanakin/carsi-storefront/pkg/config"
	pkgerrors "github.com/ozanakin/carsi-storefront/pkg/errors"
	"github.com/ozanakin/carsi-storefront/pkg/logger"
)

// ReadyCheck probes one downstream dependency.
type ReadyCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Carsi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Carsi-Env", cfg.App.Env)

		for _, check := range checks {
			if check.Probe == nil {
				continue
			}
			if err := check.Probe(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.Name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
