package controllers

import (
	"net/http"

	"github.com/Wizhill05/car-rental/api/responses"
	"github.com/Wizhill05/car-rental/pkg/config"
	"github.com/Wizhill05/car-rental/pkg/db"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CarRental-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pinger db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-CarRental-Env", cfg.App.Env)
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
