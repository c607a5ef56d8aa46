package ratings

import (
	"context"
	"errors"

	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/state"
)

// ApplyRating moves agg from a user's old personal rating to the new one.
// A first rating adds one to the count and clearing a rating removes one.
func ApplyRating(agg Aggregate, oldRating, newRating float64) Aggregate {
	agg.TotalRatingScore += newRating - oldRating

	switch {
	case oldRating == 0 && newRating > 0:
		agg.RatingCount++
	case oldRating > 0 && newRating == 0:
		agg.RatingCount--
	}

	if agg.RatingCount <= 0 {
		return Aggregate{}
	}
	agg.TotalRatingScore = max(agg.TotalRatingScore, 0)
	return agg
}

/*
SetRating records newRating as userId's personal rating for carId and updates
the car's aggregate in the same transaction.

Both documents are read inside the transaction, so a retry after a write
conflict recomputes the aggregate from the latest committed values. The
returned event mirrors exactly what was committed. A rating of 0 clears the
personal entry.
*/
func SetRating(db Store, ctx context.Context, carId, userId string, newRating float64) (state.RatingUpdated, error) {
	if !models.IsValidRating(newRating) {
		return state.RatingUpdated{}, ErrInvalidRating
	}

	var committed state.RatingUpdated
	err := db.RunTransaction(ctx, func(ctx context.Context) error {
		carDb, err := db.GetCarById(ctx, carId)
		if err != nil {
			if errors.Is(err, mongodb.ErrRecordNotFound) {
				return cars.ErrCarNotFound
			}
			return err
		}

		userDb, err := db.GetUserById(ctx, userId)
		if err != nil {
			if errors.Is(err, mongodb.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		oldRating := userDb.Ratings[carId]
		agg := ApplyRating(Aggregate{
			TotalRatingScore: carDb.TotalRatingScore,
			RatingCount:      carDb.RatingCount,
		}, oldRating, newRating)

		if err := db.UpdateCarRating(ctx, carId, agg.TotalRatingScore, agg.RatingCount); err != nil {
			if errors.Is(err, mongodb.ErrRecordNotFound) {
				return cars.ErrCarNotFound
			}
			return err
		}

		if newRating == 0 {
			err = db.UnsetUserRating(ctx, userId, carId)
		} else {
			err = db.SetUserRating(ctx, userId, carId, newRating)
		}
		if err != nil {
			return err
		}

		committed = state.RatingUpdated{
			CarID:            carId,
			UserID:           userId,
			Rating:           newRating,
			TotalRatingScore: agg.TotalRatingScore,
			RatingCount:      agg.RatingCount,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, cars.ErrCarNotFound) || errors.Is(err, ErrUserNotFound) {
			return state.RatingUpdated{}, err
		}
		logx.FromContext(ctx).Error().Err(err).Str("car_id", carId).Msg("rating transaction failed")
		return state.RatingUpdated{}, ErrTransaction
	}

	return committed, nil
}
