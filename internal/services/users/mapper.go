package users

import (
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/lealre/carsdb-backend/internal/mongodb"
)

func MapDbUserToProfile(userDb mongodb.UserDb) models.Profile {
	profile := models.Profile{
		Uid:       userDb.Id,
		Email:     userDb.Email,
		IsAdmin:   userDb.IsAdmin,
		Ratings:   userDb.Ratings,
		Wishlist:  userDb.Wishlist,
		OwnedCars: userDb.OwnedCars,
	}
	profile.Normalize()
	return profile
}

func collectionField(collection models.Collection) (string, error) {
	switch collection {
	case models.Wishlist:
		return mongodb.WishlistField, nil
	case models.OwnedCars:
		return mongodb.OwnedCarsField, nil
	}
	return "", models.ErrInvalidCollection
}
