package models

import (
	"errors"
	"slices"
)

type Collection string

const (
	Wishlist  Collection = "wishlist"
	OwnedCars Collection = "ownedCars"
)

var ErrInvalidCollection = errors.New("collection must be one of 'wishlist' or 'ownedCars'")

func ParseCollection(value string) (Collection, error) {
	switch Collection(value) {
	case Wishlist, OwnedCars:
		return Collection(value), nil
	case "owned":
		return OwnedCars, nil
	}
	return "", ErrInvalidCollection
}

// Profile is a user's document merged with the identity fields. A signed-in
// session is a non-nil *Profile.
type Profile struct {
	Uid       string             `json:"uid"`
	Email     string             `json:"email"`
	IsAdmin   bool               `json:"isAdmin"`
	Ratings   map[string]float64 `json:"ratings"`
	Wishlist  []string           `json:"wishlist"`
	OwnedCars []string           `json:"ownedCars"`
}

// RatingFor returns the personal rating for a car, 0 when not rated.
func (p *Profile) RatingFor(carId string) float64 {
	if p == nil {
		return 0
	}
	return p.Ratings[carId]
}

func (p *Profile) Set(collection Collection) []string {
	if p == nil {
		return nil
	}
	switch collection {
	case Wishlist:
		return p.Wishlist
	case OwnedCars:
		return p.OwnedCars
	}
	return nil
}

func (p *Profile) Has(collection Collection, carId string) bool {
	return slices.Contains(p.Set(collection), carId)
}

func (p *Profile) InWishlist(carId string) bool { return p.Has(Wishlist, carId) }

func (p *Profile) Owns(carId string) bool { return p.Has(OwnedCars, carId) }

// Normalize replaces absent collections with empty ones.
func (p *Profile) Normalize() {
	if p.Ratings == nil {
		p.Ratings = map[string]float64{}
	}
	if p.Wishlist == nil {
		p.Wishlist = []string{}
	}
	if p.OwnedCars == nil {
		p.OwnedCars = []string{}
	}
}

// Clone returns a deep copy so reducers never share backing arrays.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Ratings = make(map[string]float64, len(p.Ratings))
	for k, v := range p.Ratings {
		c.Ratings[k] = v
	}
	c.Wishlist = slices.Clone(p.Wishlist)
	c.OwnedCars = slices.Clone(p.OwnedCars)
	c.Normalize()
	return &c
}
