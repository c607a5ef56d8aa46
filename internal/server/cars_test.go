package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/lealre/carsdb-backend/internal/api"
	"github.com/lealre/carsdb-backend/internal/catalog"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/state"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestCatalogRead(t *testing.T) {
	resetDB(t)
	user := signUp(t, "mater@carsdb.dev", "towmater")

	mater := seedCar(t, mongodb.CarDb{Name: "Mater", Image: "https://img.test/mater.png", Series: "Cars", Tags: []string{"tow"}})
	lightning := seedCar(t, mongodb.CarDb{Name: "Lightning McQueen", Image: "https://img.test/lm.png", Series: "Cars", Tags: []string{"racer"}, TotalRatingScore: 9, RatingCount: 2})
	seedCar(t, mongodb.CarDb{Name: "Dusty", Image: "https://img.test/dusty.png", Series: "Planes"})

	t.Run("Listing returns every car sorted by name", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/cars", user.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		list := decodeBody[[]models.Car](t, resp)
		require.Len(t, list, 3)
		require.Equal(t, "Dusty", list[0].Name)
		require.Equal(t, "Lightning McQueen", list[1].Name)
		require.Equal(t, "Mater", list[2].Name)
		require.Equal(t, 4.5, list[1].AverageRating())
	})

	t.Run("Store filters cars and a nil filter matches all", func(t *testing.T) {
		ctx := context.Background()

		all, err := testDb.GetCars(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 3)

		planes, err := testDb.GetCars(ctx, bson.M{"series": "Planes"}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
		require.NoError(t, err)
		require.Len(t, planes, 1)
		require.Equal(t, "Dusty", planes[0].Name)

		byIds, err := testDb.GetCarsByIds(ctx, []string{mater.Id, "missing"})
		require.NoError(t, err)
		require.Len(t, byIds, 1)
		require.Equal(t, mater.Id, byIds[0].Id)
	})

	t.Run("View applies filters, sort and facets", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/cars/view?series=Cars&sort=rating-desc", user.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		view := decodeBody[catalog.View](t, resp)
		require.Equal(t, 2, view.Page.TotalResults)
		require.Equal(t, 1, view.Page.TotalPages)
		require.Equal(t, lightning.Id, view.Page.Content[0].Id)
		require.Equal(t, mater.Id, view.Page.Content[1].Id)
		require.Equal(t, []string{"racer", "tow"}, view.Facets.Tags)
		require.Equal(t, []string{"Cars", "Planes"}, view.Facets.Series)
	})

	t.Run("View search matches tags case-insensitively", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/cars/view?search=TOW", user.AccessToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		view := decodeBody[catalog.View](t, resp)
		require.Len(t, view.Page.Content, 1)
		require.Equal(t, mater.Id, view.Page.Content[0].Id)
	})

	t.Run("View rejects an unknown sort and a bad page", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/cars/view?sort=price", user.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		resp = doRequest(t, http.MethodGet, "/cars/view?page=0", user.AccessToken, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("Getting a missing car returns 404", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, "/cars/does-not-exist", user.AccessToken, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody[api.ErrorResponse](t, resp)
		require.Equal(t, "Car not found", body.ErrorMessage)
	})
}

func TestAdminCatalogWrites(t *testing.T) {
	resetDB(t)
	admin := signUp(t, "admin@carsdb.dev", "adminpass")
	makeAdmin(t, admin.Session.Uid)
	user := signUp(t, "guido@carsdb.dev", "pitstop")

	t.Run("Non admins get 403 on every admin route", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/cars", user.AccessToken, cars.CreateCarRequest{Name: "Guido", Image: "https://img.test/g.png", Series: "Cars"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBody[api.ErrorResponse](t, resp)
		require.Equal(t, "Admin privileges required", body.ErrorMessage)

		resp = doRequest(t, http.MethodPost, "/cars/tags", user.AccessToken, cars.ApplyTagRequest{CarIds: []string{"x"}, Tag: "t"})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	var created models.Car
	t.Run("Admin creates a car with an empty rating", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/cars", admin.AccessToken, cars.CreateCarRequest{Name: "Guido", Image: "https://img.test/g.png", Series: "Cars"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		added := decodeBody[state.ItemAdded](t, resp)
		created = added.Car
		require.NotEmpty(t, created.Id)
		require.Zero(t, created.RatingCount)
		require.Empty(t, created.Tags)

		carDb := getCarDb(t, created.Id)
		require.Equal(t, "Guido", carDb.Name)
	})

	t.Run("Creating a car with an unknown series returns 400", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/cars", admin.AccessToken, cars.CreateCarRequest{Name: "Guido", Image: "https://img.test/g.png", Series: "Monster Trucks"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody[api.ErrorResponse](t, resp)
		require.Equal(t, "must be one of the known series", body.Details["series"])
	})

	t.Run("Admin edits only the given fields", func(t *testing.T) {
		name := "Guido Angelo"
		resp := doRequest(t, http.MethodPatch, "/cars/"+created.Id, admin.AccessToken, cars.UpdateCarRequest{Name: &name})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		updated := decodeBody[state.ItemUpdated](t, resp)
		require.Equal(t, "Guido Angelo", updated.Car.Name)
		require.Equal(t, "Cars", updated.Car.Series)
	})

	t.Run("Bulk tagging tags every selected car once", func(t *testing.T) {
		other := seedCar(t, mongodb.CarDb{Name: "Luigi", Image: "https://img.test/l.png", Series: "Cars", Tags: []string{"pit crew"}})

		resp := doRequest(t, http.MethodPost, "/cars/tags", admin.AccessToken, cars.ApplyTagRequest{CarIds: []string{created.Id, other.Id}, Tag: " pit crew "})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		res := decodeBody[cars.ApplyTagResponse](t, resp)
		require.Equal(t, `Successfully added tag "pit crew" to 2 cars.`, res.Message)
		require.Equal(t, []string{"pit crew"}, getCarDb(t, created.Id).Tags)
		require.Equal(t, []string{"pit crew"}, getCarDb(t, other.Id).Tags)
	})

	t.Run("Bulk tagging with a missing id changes nothing", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/cars/tags", admin.AccessToken, cars.ApplyTagRequest{CarIds: []string{created.Id, "missing"}, Tag: "italian"})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		require.Equal(t, []string{"pit crew"}, getCarDb(t, created.Id).Tags)
	})

	t.Run("Bulk tagging rejects a blank tag and an empty selection", func(t *testing.T) {
		resp := doRequest(t, http.MethodPost, "/cars/tags", admin.AccessToken, cars.ApplyTagRequest{CarIds: []string{created.Id}, Tag: "   "})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()

		resp = doRequest(t, http.MethodPost, "/cars/tags", admin.AccessToken, cars.ApplyTagRequest{Tag: "italian"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}
