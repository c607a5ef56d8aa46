package cars

import (
	"errors"
	"net/http"
)

var (
	ErrCarNotFound      = errors.New("car not found")
	ErrMissingFields    = errors.New("please fill out all fields")
	ErrInvalidSeries    = errors.New("series is not one of the known series")
	ErrNoFieldsToUpdate = errors.New("at least one of name, image or series must be provided")
	ErrBlankTag         = errors.New("tag must not be blank")
	ErrEmptySelection   = errors.New("select at least one car to tag")
)

var ErrorMap = map[error]int{
	ErrCarNotFound:      http.StatusNotFound,
	ErrMissingFields:    http.StatusBadRequest,
	ErrInvalidSeries:    http.StatusBadRequest,
	ErrNoFieldsToUpdate: http.StatusBadRequest,
	ErrBlankTag:         http.StatusBadRequest,
	ErrEmptySelection:   http.StatusBadRequest,
}
