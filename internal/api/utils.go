package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/logx"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) error {
	response, err := json.Marshal(&payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)

	return nil
}

func respondWithError(w http.ResponseWriter, code int, msg string) error {
	messageBody := ErrorResponse{
		StatusCode:   code,
		ErrorMessage: msg,
	}
	return respondWithJSON(w, code, messageBody)
}

func RespondWithForbidden(w http.ResponseWriter) error {
	return respondWithError(w, http.StatusForbidden, formatErrorMessage(auth.ErrForbidden))
}

func RespondWithUnauthorized(w http.ResponseWriter, err error) error {
	return respondWithError(w, http.StatusUnauthorized, formatErrorMessage(err))
}

func RespondWithTooManyRequests(w http.ResponseWriter) error {
	return respondWithError(w, http.StatusTooManyRequests, formatErrorMessage(auth.ErrTooManyRequests))
}

// respondWithBodyError answers a failed decodeJSONBody.
func respondWithBodyError(w http.ResponseWriter, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode:   http.StatusBadRequest,
			ErrorMessage: formatErrorMessage(err),
			Details:      validationErr.Details,
		})
	}
	return respondWithError(w, http.StatusBadRequest, formatErrorMessage(ErrInvalidBody))
}

/*
respondWithServiceError maps err through the given error maps. Unknown errors
are logged with the request logger and answered with a generic 500, so store
failures never leak driver messages.
*/
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, errMaps ...map[error]int) error {
	for _, errMap := range errMaps {
		if statusCode, ok := getErrorStatusCode(errMap, err); ok {
			return respondWithError(w, statusCode, formatErrorMessage(err))
		}
	}
	logx.FromContext(r.Context()).Error().Err(err).Msg("unexpected error")
	return respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
}

func formatErrorMessage(err error) string {
	errorMsg := err.Error()
	if len(errorMsg) > 0 {
		return strings.ToUpper(errorMsg[:1]) + errorMsg[1:]
	}
	return ""
}

// getErrorStatusCode safely checks if an error is in the ErrorMap by iterating through it
// and using errors.Is() to match errors. This prevents panics when non-hashable errors
// (like MongoDB errors) are passed as map keys.
func getErrorStatusCode(errMap map[error]int, err error) (int, bool) {
	for predefinedErr, statusCode := range errMap {
		if errors.Is(err, predefinedErr) {
			return statusCode, true
		}
	}
	return 0, false
}
