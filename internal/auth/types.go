package auth

import (
	"time"

	"github.com/lealre/carsdb-backend/internal/models"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	Session     models.Profile `json:"session"`
}
