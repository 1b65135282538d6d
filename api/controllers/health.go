package controllers

import (
	"net/http"

	"github.com/oakhollow/orderdesk-backend/api/responses"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks that the database and redis are both reachable.
func HealthReady(cfg *config.Config, checks map[string]func() error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-OrderDesk-Env", cfg.App.Env)
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
