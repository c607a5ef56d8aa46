package client

import (
	"context"
	"net/http"

	"github.com/lealre/carsdb-backend/internal/auth"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/state"
)

func (c *Client) SignUp(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	return c.login(ctx, "/signup", email, password)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.LoginResponse, error) {
	return c.login(ctx, "/signin", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) (auth.LoginResponse, error) {
	var res auth.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, path, auth.Credentials{Email: email, Password: password}, &res); err != nil {
		return auth.LoginResponse{}, err
	}
	c.token = res.AccessToken

	if err := c.startSession(ctx, res.Session); err != nil {
		return auth.LoginResponse{}, err
	}
	return res, nil
}

// Resume loads the session and catalog for a token passed with WithToken.
func (c *Client) Resume(ctx context.Context) error {
	me, err := c.Me(ctx)
	if err != nil {
		return err
	}
	return c.startSession(ctx, me)
}

func (c *Client) startSession(ctx context.Context, session models.Profile) error {
	items, err := c.ListCars(ctx)
	if err != nil {
		return err
	}
	c.App.Dispatch(state.SessionStarted{Session: session, Items: items})
	return nil
}

// SignOut revokes the token on the server and tears down the local state.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/signout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	c.App.Dispatch(state.SessionEnded{})
	c.Notices.Clear()
	return nil
}

func (c *Client) Me(ctx context.Context) (models.Profile, error) {
	var me models.Profile
	err := c.doJSON(ctx, http.MethodGet, "/me", nil, &me)
	return me, err
}
