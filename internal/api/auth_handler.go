package api

import (
	"net/http"

	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/services/users"
)

func (api *API) SignUp(w http.ResponseWriter, r *http.Request) {
	var req auth.Credentials
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	res, err := users.SignUp(api.Db, r.Context(), api.JWT, req)
	if err != nil {
		respondWithServiceError(w, r, err, users.ErrorMap, auth.ErrorsMap)
		return
	}

	respondWithJSON(w, http.StatusCreated, res)
}

func (api *API) SignIn(w http.ResponseWriter, r *http.Request) {
	var req auth.Credentials
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithBodyError(w, err)
		return
	}

	res, err := users.SignIn(api.Db, r.Context(), api.JWT, req)
	if err != nil {
		respondWithServiceError(w, r, err, auth.ErrorsMap, users.ErrorMap)
		return
	}

	respondWithJSON(w, http.StatusOK, res)
}

func (api *API) SignOut(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	claims, ok := auth.GetClaimsFromContext(r.Context())
	if !ok {
		RespondWithUnauthorized(w, auth.ErrInvalidToken)
		return
	}

	if err := users.SignOut(api.Db, r.Context(), claims); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	logger.Info().Str("user_id", claims.UserID).Msg("user signed out")
	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: "Signed out successfully"})
}

func (api *API) Me(w http.ResponseWriter, r *http.Request) {
	currentUser := auth.GetUserFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, currentUser)
}
