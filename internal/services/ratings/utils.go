package ratings

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidRating = errors.New("rating must be 0 or a multiple of 0.5 between 0.5 and 5")
	ErrUserNotFound  = errors.New("user profile not found")
	ErrTransaction   = errors.New("rating could not be saved, please try again")
)

var ErrorMap = map[error]int{
	ErrInvalidRating: http.StatusBadRequest,
	ErrUserNotFound:  http.StatusNotFound,
	ErrTransaction:   http.StatusConflict,
}
