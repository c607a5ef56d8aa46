package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/services/ratings"
)

func (api *API) SetRating(w http.ResponseWriter, r *http.Request) {
	currentUser := auth.GetUserFromContext(r.Context())

	var req ratings.SetRatingRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	updated, err := ratings.SetRating(api.Db, r.Context(), chi.URLParam(r, "id"), currentUser.Uid, *req.Rating)
	api.Metrics.ObserveProtocol(metrics.ProtocolRating, err)
	if err != nil {
		respondWithServiceError(w, r, err, ratings.ErrorMap, cars.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}
