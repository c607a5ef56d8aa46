package cars

import "github.com/lealre/carsdb-backend/internal/state"

type CreateCarRequest struct {
	Name   string `json:"name" validate:"required"`
	Image  string `json:"image" validate:"required,url"`
	Series string `json:"series" validate:"required,series"`
}

// UpdateCarRequest is a partial update; at least one field must be present.
type UpdateCarRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Image  *string `json:"image,omitempty" validate:"omitempty,url"`
	Series *string `json:"series,omitempty" validate:"omitempty,series"`
}

type ApplyTagRequest struct {
	CarIds []string `json:"carIds"`
	Tag    string   `json:"tag"`
}

type ApplyTagResponse struct {
	state.ItemTagged
	Message string `json:"message"`
}
