package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lealre/carsdb-backend/internal/catalog"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/services/ratings"
	"github.com/lealre/carsdb-backend/internal/services/users"
	"github.com/lealre/carsdb-backend/internal/state"
)

func (c *Client) ListCars(ctx context.Context) ([]models.Car, error) {
	var list []models.Car
	if err := c.doJSON(ctx, http.MethodGet, "/cars", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetCar(ctx context.Context, id string) (models.Car, error) {
	var car models.Car
	err := c.doJSON(ctx, http.MethodGet, "/cars/"+url.PathEscape(id), nil, &car)
	return car, err
}

// View asks the server for a computed page.
func (c *Client) View(ctx context.Context, q catalog.Query) (catalog.View, error) {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Sort != "" {
		values.Set("sort", string(q.Sort))
	}
	if q.Collection != "" {
		values.Set("collection", string(q.Collection))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	for _, tag := range q.Tags {
		values.Add("tag", tag)
	}
	for _, series := range q.Series {
		values.Add("series", series)
	}

	path := "/cars/view"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var view catalog.View
	err := c.doJSON(ctx, http.MethodGet, path, nil, &view)
	return view, err
}

// LocalView runs the pipeline over the local state.
func (c *Client) LocalView(q catalog.Query) catalog.View {
	return catalog.Apply(c.App.Items, c.App.Session, q)
}

// SetRating commits a rating and applies the returned aggregate. Nothing is
// changed locally when the call fails. Invalid values never reach the server.
func (c *Client) SetRating(ctx context.Context, carId string, rating float64) (state.RatingUpdated, error) {
	if !models.IsValidRating(rating) {
		return state.RatingUpdated{}, ratings.ErrInvalidRating
	}

	var updated state.RatingUpdated
	req := ratings.SetRatingRequest{Rating: &rating}
	if err := c.doJSON(ctx, http.MethodPut, "/cars/"+url.PathEscape(carId)+"/rating", req, &updated); err != nil {
		return state.RatingUpdated{}, err
	}
	c.App.Dispatch(updated)
	return updated, nil
}

func (c *Client) ToggleCollection(ctx context.Context, carId string, collection models.Collection) (state.CollectionToggled, error) {
	var toggled state.CollectionToggled
	path := "/cars/" + url.PathEscape(carId) + "/collections/" + url.PathEscape(string(collection))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &toggled); err != nil {
		return state.CollectionToggled{}, err
	}
	c.App.Dispatch(toggled)
	return toggled, nil
}

func (c *Client) UserPage(ctx context.Context, uid string) (users.UserPage, error) {
	var page users.UserPage
	err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(uid), nil, &page)
	return page, err
}

func (c *Client) CreateCar(ctx context.Context, req cars.CreateCarRequest) (state.ItemAdded, error) {
	var added state.ItemAdded
	if err := c.doJSON(ctx, http.MethodPost, "/cars", req, &added); err != nil {
		return state.ItemAdded{}, err
	}
	c.App.Dispatch(added)
	return added, nil
}

func (c *Client) UpdateCar(ctx context.Context, id string, req cars.UpdateCarRequest) (state.ItemUpdated, error) {
	var updated state.ItemUpdated
	if err := c.doJSON(ctx, http.MethodPatch, "/cars/"+url.PathEscape(id), req, &updated); err != nil {
		return state.ItemUpdated{}, err
	}
	c.App.Dispatch(updated)
	return updated, nil
}

// ApplyTag tags the selection and reports the outcome as a notice. A blank
// tag or an empty selection fails locally without a request.
func (c *Client) ApplyTag(ctx context.Context, carIds []string, tag string) (state.ItemTagged, error) {
	tag = strings.TrimSpace(tag)
	switch {
	case tag == "":
		c.Notices.TagFailed(cars.ErrBlankTag)
		return state.ItemTagged{}, cars.ErrBlankTag
	case len(carIds) == 0:
		c.Notices.TagFailed(cars.ErrEmptySelection)
		return state.ItemTagged{}, cars.ErrEmptySelection
	}

	var res cars.ApplyTagResponse
	if err := c.doJSON(ctx, http.MethodPost, "/cars/tags", cars.ApplyTagRequest{CarIds: carIds, Tag: tag}, &res); err != nil {
		c.Notices.TagFailed(err)
		return state.ItemTagged{}, err
	}
	c.App.Dispatch(res.ItemTagged)
	c.Notices.Success(res.Message)
	return res.ItemTagged, nil
}
