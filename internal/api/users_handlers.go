package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/services/users"
)

var collectionsErrorMap = map[error]int{
	models.ErrInvalidCollection: http.StatusBadRequest,
}

func (api *API) ToggleCollection(w http.ResponseWriter, r *http.Request) {
	currentUser := auth.GetUserFromContext(r.Context())

	collection, err := models.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, formatErrorMessage(err))
		return
	}

	toggled, err := users.ToggleCollection(api.Db, r.Context(), currentUser, chi.URLParam(r, "id"), collection)
	api.Metrics.ObserveProtocol(metrics.ProtocolToggle, err)
	if err != nil {
		respondWithServiceError(w, r, err, cars.ErrorMap, users.ErrorMap, collectionsErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, toggled)
}

func (api *API) GetUserPage(w http.ResponseWriter, r *http.Request) {
	page, err := users.GetUserPage(api.Db, r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, r, err, users.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}
