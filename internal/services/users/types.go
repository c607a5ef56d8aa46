package users

import "github.com/lealre/carsdb-backend/internal/models"

// UserPage is the public view of another user's collections.
type UserPage struct {
	Uid       string       `json:"uid"`
	Email     string       `json:"email"`
	OwnedCars []models.Car `json:"ownedCars"`
	Wishlist  []models.Car `json:"wishlist"`
}
