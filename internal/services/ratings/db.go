package ratings

import (
	"context"

	"github.com/lealre/carsdb-backend/internal/mongodb"
)

// Store is what the rating transaction touches: one car and one profile.
type Store interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	GetCarById(ctx context.Context, id string) (mongodb.CarDb, error)
	GetUserById(ctx context.Context, id string) (mongodb.UserDb, error)
	UpdateCarRating(ctx context.Context, id string, totalRatingScore float64, ratingCount int) error
	SetUserRating(ctx context.Context, userId, carId string, rating float64) error
	UnsetUserRating(ctx context.Context, userId, carId string) error
}

var _ Store = (*mongodb.DB)(nil)
