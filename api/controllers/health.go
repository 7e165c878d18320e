package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/srijeyam/tyrestore-backend/api/responses"
	"github.com/srijeyam/tyrestore-backend/pkg/config"
	"github.com/srijeyam/tyrestore-backend/pkg/db"
	pkgerrors "github.com/srijeyam/tyrestore-backend/pkg/errors"
	"github.com/srijeyam/tyrestore-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tyrestore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores. A nil redis pinger means redis is
// not configured and is skipped.
func HealthReady(cfg *config.Config, mongo db.Pinger, redis db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tyrestore-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		if mongo != nil {
			if err := mongo.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mongo ping"))
				return
			}
			checks["mongo"] = "ok"
		}
		if redis != nil {
			if err := redis.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
