package users

import (
	"errors"
	"net/http"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("an account with this email already exists")
)

var ErrorMap = map[error]int{
	ErrUserNotFound: http.StatusNotFound,
	ErrEmailTaken:   http.StatusConflict,
}
