package users

import (
	"context"
	"errors"

	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/services/cars"
	"github.com/lealre/carsdb-backend/internal/state"
)

/*
ToggleCollection adds carId to the session's collection when absent and
removes it when present. Membership is decided from session, and a single
set-add or set-remove is sent to the profile. Concurrent toggles are
last-write-wins.
*/
func ToggleCollection(
	db Store,
	ctx context.Context,
	session *models.Profile,
	carId string,
	collection models.Collection,
) (state.CollectionToggled, error) {
	field, err := collectionField(collection)
	if err != nil {
		return state.CollectionToggled{}, err
	}
	if session == nil {
		return state.CollectionToggled{}, ErrUserNotFound
	}

	exists, err := db.CarExists(ctx, carId)
	if err != nil {
		return state.CollectionToggled{}, err
	}
	if !exists {
		return state.CollectionToggled{}, cars.ErrCarNotFound
	}

	member := !session.Has(collection, carId)
	if member {
		err = db.AddToUserSet(ctx, session.Uid, field, carId)
	} else {
		err = db.RemoveFromUserSet(ctx, session.Uid, field, carId)
	}
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return state.CollectionToggled{}, ErrUserNotFound
		}
		return state.CollectionToggled{}, err
	}

	return state.CollectionToggled{CarID: carId, Collection: collection, Member: member}, nil
}
