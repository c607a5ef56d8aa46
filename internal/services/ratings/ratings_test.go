package ratings_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/services/ratings"
	"github.com/lealre/carsdb-backend/internal/services/servicetest"
	"github.com/stretchr/testify/require"
)

func TestApplyRating(t *testing.T) {
	cases := []struct {
		name     string
		agg      ratings.Aggregate
		old, new float64
		want     ratings.Aggregate
	}{
		{"first rating increments the count", ratings.Aggregate{}, 0, 4, ratings.Aggregate{TotalRatingScore: 4, RatingCount: 1}},
		{"changing a rating keeps the count", ratings.Aggregate{TotalRatingScore: 9, RatingCount: 2}, 4, 2.5, ratings.Aggregate{TotalRatingScore: 7.5, RatingCount: 2}},
		{"same value is a no-op", ratings.Aggregate{TotalRatingScore: 9, RatingCount: 2}, 4, 4, ratings.Aggregate{TotalRatingScore: 9, RatingCount: 2}},
		{"clearing decrements the count", ratings.Aggregate{TotalRatingScore: 9, RatingCount: 2}, 4, 0, ratings.Aggregate{TotalRatingScore: 5, RatingCount: 1}},
		{"clearing the last rating zeroes the total", ratings.Aggregate{TotalRatingScore: 3, RatingCount: 1}, 3, 0, ratings.Aggregate{}},
		{"clearing an absent rating is a no-op", ratings.Aggregate{TotalRatingScore: 3, RatingCount: 1}, 0, 0, ratings.Aggregate{TotalRatingScore: 3, RatingCount: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ratings.ApplyRating(tc.agg, tc.old, tc.new))
		})
	}
}

func fixture(users ...string) *servicetest.Store {
	store := servicetest.New()
	store.PutCar(mongodb.CarDb{Id: "c1", Name: "Lightning", Series: "Cars", Tags: []string{}})
	for _, uid := range users {
		_, err := store.CreateUser(context.Background(), mongodb.UserDb{Id: uid, Email: uid + "@carsdb.dev"})
		if err != nil {
			panic(err)
		}
	}
	return store
}

func TestSetRating(t *testing.T) {
	ctx := context.Background()

	t.Run("First rating is committed to the car and the profile", func(t *testing.T) {
		store := fixture("u1")
		ev, err := ratings.SetRating(store, ctx, "c1", "u1", 4.5)
		require.NoError(t, err)
		require.Equal(t, 4.5, ev.Rating)
		require.Equal(t, 4.5, ev.TotalRatingScore)
		require.Equal(t, 1, ev.RatingCount)

		car, _ := store.GetCarById(ctx, "c1")
		require.Equal(t, 4.5, car.TotalRatingScore)
		require.Equal(t, 1, car.RatingCount)
		user, _ := store.GetUserById(ctx, "u1")
		require.Equal(t, 4.5, user.Ratings["c1"])
	})

	t.Run("Rating twice with the same value changes nothing", func(t *testing.T) {
		store := fixture("u1")
		first, err := ratings.SetRating(store, ctx, "c1", "u1", 3)
		require.NoError(t, err)
		second, err := ratings.SetRating(store, ctx, "c1", "u1", 3)
		require.NoError(t, err)
		require.Equal(t, first.RatingCount, second.RatingCount)
		require.Equal(t, first.TotalRatingScore, second.TotalRatingScore)
	})

	t.Run("Re-rating never double counts", func(t *testing.T) {
		store := fixture("u1")
		_, err := ratings.SetRating(store, ctx, "c1", "u1", 2)
		require.NoError(t, err)
		ev, err := ratings.SetRating(store, ctx, "c1", "u1", 5)
		require.NoError(t, err)
		require.Equal(t, 1, ev.RatingCount)
		require.Equal(t, 5.0, ev.TotalRatingScore)
	})

	t.Run("Two users rating 4 and 5 in either order give 9 over 2", func(t *testing.T) {
		for _, order := range [][]float64{{4, 5}, {5, 4}} {
			store := fixture("u1", "u2")
			_, err := ratings.SetRating(store, ctx, "c1", "u1", order[0])
			require.NoError(t, err)
			ev, err := ratings.SetRating(store, ctx, "c1", "u2", order[1])
			require.NoError(t, err)
			require.Equal(t, 9.0, ev.TotalRatingScore)
			require.Equal(t, 2, ev.RatingCount)
		}
	})

	t.Run("Concurrent raters converge", func(t *testing.T) {
		store := fixture("u1", "u2")
		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for uid, value := range map[string]float64{"u1": 4, "u2": 5} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ratings.SetRating(store, ctx, "c1", uid, value)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		car, _ := store.GetCarById(ctx, "c1")
		require.Equal(t, 9.0, car.TotalRatingScore)
		require.Equal(t, 2, car.RatingCount)
	})

	t.Run("Clearing removes the personal entry", func(t *testing.T) {
		store := fixture("u1")
		_, err := ratings.SetRating(store, ctx, "c1", "u1", 4)
		require.NoError(t, err)
		ev, err := ratings.SetRating(store, ctx, "c1", "u1", 0)
		require.NoError(t, err)
		require.Zero(t, ev.RatingCount)
		require.Zero(t, ev.TotalRatingScore)

		user, _ := store.GetUserById(ctx, "u1")
		require.NotContains(t, user.Ratings, "c1")
	})

	t.Run("Invalid values are rejected without a transaction", func(t *testing.T) {
		store := fixture("u1")
		for _, value := range []float64{-1, 0.3, 5.5, 10} {
			_, err := ratings.SetRating(store, ctx, "c1", "u1", value)
			require.ErrorIs(t, err, ratings.ErrInvalidRating)
		}
		require.Zero(t, store.Transactions)
	})

	t.Run("A vanished car fails the whole operation", func(t *testing.T) {
		store := fixture("u1")
		store.DeleteCar("c1")
		_, err := ratings.SetRating(store, ctx, "c1", "u1", 4)
		require.ErrorIs(t, err, cars.ErrCarNotFound)

		user, _ := store.GetUserById(ctx, "u1")
		require.Empty(t, user.Ratings)
	})

	t.Run("A missing profile is reported", func(t *testing.T) {
		store := fixture()
		_, err := ratings.SetRating(store, ctx, "c1", "ghost", 4)
		require.ErrorIs(t, err, ratings.ErrUserNotFound)
	})

	t.Run("A failed commit leaves both documents untouched", func(t *testing.T) {
		store := fixture("u1")
		store.TxErr = errors.New("WriteConflict")
		_, err := ratings.SetRating(store, ctx, "c1", "u1", 4)
		require.ErrorIs(t, err, ratings.ErrTransaction)

		car, _ := store.GetCarById(ctx, "c1")
		require.Zero(t, car.RatingCount)
		user, _ := store.GetUserById(ctx, "u1")
		require.Empty(t, user.Ratings)
	})
}
