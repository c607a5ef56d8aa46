package state

import (
	"fmt"

	"github.com/lealre/carsdb-backend/internal/models"
)

// Event is a committed change fed back into App. The set is closed.
type Event interface {
	event()
}

// RatingUpdated mirrors the values written by a rating transaction. Rating 0
// means the personal entry was removed.
type RatingUpdated struct {
	CarID            string  `json:"carId"`
	UserID           string  `json:"userId"`
	Rating           float64 `json:"rating"`
	TotalRatingScore float64 `json:"totalRatingScore"`
	RatingCount      int     `json:"ratingCount"`
}

type CollectionToggled struct {
	CarID      string            `json:"carId"`
	Collection models.Collection `json:"collection"`
	Member     bool              `json:"member"`
}

type ItemAdded struct {
	Car models.Car `json:"car"`
}

// ItemUpdated carries the car after an admin edit. Only name, image and
// series are taken from it.
type ItemUpdated struct {
	Car models.Car `json:"car"`
}

type ItemTagged struct {
	CarIDs []string `json:"carIds"`
	Tag    string   `json:"tag"`
}

// Message is the confirmation shown to the admin after tagging.
func (e ItemTagged) Message() string {
	return fmt.Sprintf("Successfully added tag %q to %d cars.", e.Tag, len(e.CarIDs))
}

type SessionStarted struct {
	Session models.Profile `json:"session"`
	Items   []models.Car   `json:"items,omitempty"`
}

type SessionEnded struct{}

func (RatingUpdated) event()     {}
func (CollectionToggled) event() {}
func (ItemAdded) event()         {}
func (ItemUpdated) event()       {}
func (ItemTagged) event()        {}
func (SessionStarted) event()    {}
func (SessionEnded) event()      {}
