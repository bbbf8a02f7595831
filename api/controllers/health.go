package controllers

import (
	"context"
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/pkg/config"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogStater interface {
	Snapshot() catalog.Snapshot
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the snapshot store answers and the
// catalog has completed at least one fetch attempt.
func HealthReady(cfg *config.Config, store pinger, cat catalogStater, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot store unreachable"))
				return
			}
		}

		state := catalog.StateLoading
		if cat != nil {
			state = cat.Snapshot().State
		}
		if state == catalog.StateLoading {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "catalog still loading"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"status":  "ready",
			"catalog": string(state),
		})
	}
}
