package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/catalog"
	"github.com/lealre/carsdb-backend/internal/metrics"
	"github.com/lealre/carsdb-backend/internal/services/cars"
)

func (api *API) ListCars(w http.ResponseWriter, r *http.Request) {
	allCars, err := cars.ListCars(api.Db, r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, allCars)
}

/*
GetCarsView runs the catalog pipeline on the server.

Query parameters: search, sort, tag (repeatable), series (repeatable),
collection and page. The collection filter uses the caller's own session.
*/
func (api *API) GetCarsView(w http.ResponseWriter, r *http.Request) {
	q, err := parseViewQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, formatErrorMessage(err))
		return
	}

	allCars, err := cars.ListCars(api.Db, r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	session := auth.GetUserFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, catalog.Apply(allCars, session, q))
}

func (api *API) GetCar(w http.ResponseWriter, r *http.Request) {
	car, err := cars.GetCar(api.Db, r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, r, err, cars.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, car)
}

func (api *API) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req cars.CreateCarRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	added, err := cars.CreateCar(api.Db, r.Context(), req)
	if err != nil {
		respondWithServiceError(w, r, err, cars.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusCreated, added)
}

func (api *API) UpdateCar(w http.ResponseWriter, r *http.Request) {
	var req cars.UpdateCarRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	updated, err := cars.UpdateCar(api.Db, r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, r, err, cars.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (api *API) ApplyTag(w http.ResponseWriter, r *http.Request) {
	var req cars.ApplyTagRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	tagged, err := cars.ApplyTag(api.Db, r.Context(), req.CarIds, req.Tag)
	api.Metrics.ObserveProtocol(metrics.ProtocolTag, err)
	if err != nil {
		respondWithServiceError(w, r, err, cars.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, cars.ApplyTagResponse{ItemTagged: tagged, Message: tagged.Message()})
}

func parseViewQuery(r *http.Request) (catalog.Query, error) {
	values := r.URL.Query()
	q := catalog.DefaultQuery()

	q.Search = strings.TrimSpace(values.Get("search"))
	q.Tags = values["tag"]
	q.Series = values["series"]

	sortKey, err := catalog.ParseSort(values.Get("sort"))
	if err != nil {
		return catalog.Query{}, err
	}
	q.Sort = sortKey

	collection, err := catalog.ParseCollection(values.Get("collection"))
	if err != nil {
		return catalog.Query{}, err
	}
	q.Collection = collection

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return catalog.Query{}, ErrInvalidPage
		}
		q.Page = page
	}

	return q, nil
}
