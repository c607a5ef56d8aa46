package api

import (
	"context"
	"net/http"
	"time"
)

func (api *API) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := api.Db.Ping(ctx); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: err.Error()})
		return
	}
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: api.Db.GetDatabaseName()})
}

func (api *API) ServeMetrics(w http.ResponseWriter, r *http.Request) {
	api.Metrics.Handler().ServeHTTP(w, r)
}
