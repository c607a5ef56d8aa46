package server

import (
	"net/http"
	"sync"
	"testing"

	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/ratings"
	"github.com/lealre/carsdb-backend/internal/state"
	"github.com/stretchr/testify/require"
)

func ratingReq(value float64) ratings.SetRatingRequest {
	return ratings.SetRatingRequest{Rating: &value}
}

func TestRatingProtocol(t *testing.T) {
	resetDB(t)
	alice := signUp(t, "alice@carsdb.dev", "alicepass")
	bob := signUp(t, "bob@carsdb.dev", "bobspass")
	car := seedCar(t, mongodb.CarDb{Name: "Doc Hudson", Image: "https://img.test/doc.png", Series: "Cars"})

	t.Run("First rating creates the aggregate", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", alice.AccessToken, ratingReq(4))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decodeBody[state.RatingUpdated](t, resp)
		require.Equal(t, 4.0, updated.TotalRatingScore)
		require.Equal(t, 1, updated.RatingCount)
		require.Equal(t, 4.0, getUserDb(t, alice.Session.Uid).Ratings[car.Id])
	})

	t.Run("Re-rating replaces the old value without changing the count", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", alice.AccessToken, ratingReq(3.5))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decodeBody[state.RatingUpdated](t, resp)
		require.Equal(t, 3.5, updated.TotalRatingScore)
		require.Equal(t, 1, updated.RatingCount)
	})

	t.Run("Clearing a rating removes it from the aggregate", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", alice.AccessToken, ratingReq(0))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		carDb := getCarDb(t, car.Id)
		require.Zero(t, carDb.TotalRatingScore)
		require.Zero(t, carDb.RatingCount)
		_, ok := getUserDb(t, alice.Session.Uid).Ratings[car.Id]
		require.False(t, ok)
	})

	t.Run("Concurrent raters are both counted", func(t *testing.T) {
		var wg sync.WaitGroup
		statuses := make(chan int, 2)
		for _, req := range []struct {
			token string
			value float64
		}{{alice.AccessToken, 4}, {bob.AccessToken, 5}} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", req.token, ratingReq(req.value))
				resp.Body.Close()
				statuses <- resp.StatusCode
			}()
		}
		wg.Wait()
		close(statuses)

		for status := range statuses {
			require.Equal(t, http.StatusOK, status)
		}

		carDb := getCarDb(t, car.Id)
		require.Equal(t, 9.0, carDb.TotalRatingScore)
		require.Equal(t, 2, carDb.RatingCount)
	})

	t.Run("Invalid ratings return 400", func(t *testing.T) {
		for _, value := range []float64{-1, 0.3, 5.5} {
			resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", alice.AccessToken, ratingReq(value))
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, "value %v", value)
			resp.Body.Close()
		}

		resp := doRequest(t, http.MethodPut, "/cars/"+car.Id+"/rating", alice.AccessToken, map[string]any{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Rating a missing car returns 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodPut, "/cars/missing/rating", alice.AccessToken, ratingReq(3))
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}
