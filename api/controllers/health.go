package controllers

import (
	"net/http"

	"github.com/sparetrackhq/sparetrack-backend/api/responses"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db"
	pkgerrors "github.com/sparetrackhq/sparetrack-backend/pkg/errors"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
	"github.com/sparetrackhq/sparetrack-backend/pkg/types"
)

// Health is the liveness probe.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, types.HealthPayload{Status: "ok"})
	}
}

// Ready reports readiness: every datasource must answer a ping.
func Ready(logg *logger.Logger, pingers ...db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "datasource ping"))
				return
			}
		}
		responses.WriteJSON(w, http.StatusOK, types.HealthPayload{Status: "ok"})
	}
}
