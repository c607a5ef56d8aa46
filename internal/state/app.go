// Package state is the client-side application state. Every mutation goes
// through App.Dispatch with an event describing what the backend committed;
// nothing is refetched behind the caller's back.
package state

import (
	"slices"

	"github.com/lealre/carsdb-backend/internal/models"
)

// App is owned by a single goroutine. It is created empty, filled by
// SessionStarted and torn down by SessionEnded.
type App struct {
	Items   []models.Car
	Session *models.Profile
}

func New() *App {
	return &App{Items: []models.Car{}}
}

func (a *App) SignedIn() bool {
	return a.Session != nil
}

func (a *App) IsAdmin() bool {
	return a.Session != nil && a.Session.IsAdmin
}

// Car returns the item with the given id.
func (a *App) Car(id string) (models.Car, bool) {
	if i := a.index(id); i >= 0 {
		return a.Items[i], true
	}
	return models.Car{}, false
}

// Dispatch applies e. Events that reference unknown cars, or session events
// without a session, leave the state unchanged.
func (a *App) Dispatch(e Event) {
	switch ev := e.(type) {
	case SessionStarted:
		session := ev.Session.Clone()
		a.Session = session
		if ev.Items != nil {
			a.Items = slices.Clone(ev.Items)
		}
	case SessionEnded:
		a.Session = nil
		a.Items = []models.Car{}
	case RatingUpdated:
		a.applyRating(ev)
	case CollectionToggled:
		a.applyToggle(ev)
	case ItemAdded:
		if a.index(ev.Car.Id) >= 0 {
			return
		}
		a.Items = append(a.Items, ev.Car)
	case ItemUpdated:
		i := a.index(ev.Car.Id)
		if i < 0 {
			return
		}
		a.Items[i].Name = ev.Car.Name
		a.Items[i].Image = ev.Car.Image
		a.Items[i].Series = ev.Car.Series
		a.Items[i].UpdatedAt = ev.Car.UpdatedAt
	case ItemTagged:
		for _, id := range ev.CarIDs {
			if i := a.index(id); i >= 0 {
				a.Items[i] = a.Items[i].WithTag(ev.Tag)
			}
		}
	}
}

func (a *App) applyRating(ev RatingUpdated) {
	i := a.index(ev.CarID)
	if i < 0 {
		return
	}
	a.Items[i].TotalRatingScore = ev.TotalRatingScore
	a.Items[i].RatingCount = ev.RatingCount

	if a.Session == nil || a.Session.Uid != ev.UserID {
		return
	}
	a.Session.Normalize()
	if ev.Rating == 0 {
		delete(a.Session.Ratings, ev.CarID)
		return
	}
	a.Session.Ratings[ev.CarID] = ev.Rating
}

func (a *App) applyToggle(ev CollectionToggled) {
	if a.Session == nil {
		return
	}
	a.Session.Normalize()

	var set *[]string
	switch ev.Collection {
	case models.Wishlist:
		set = &a.Session.Wishlist
	case models.OwnedCars:
		set = &a.Session.OwnedCars
	default:
		return
	}

	i := slices.Index(*set, ev.CarID)
	switch {
	case ev.Member && i < 0:
		*set = append(*set, ev.CarID)
	case !ev.Member && i >= 0:
		*set = slices.Delete(*set, i, i+1)
	}
}

func (a *App) index(id string) int {
	return slices.IndexFunc(a.Items, func(c models.Car) bool { return c.Id == id })
}
