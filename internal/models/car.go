// Package models holds the catalog types shared by the services, the view
// pipeline, the reconciliation reducer and the client.
package models

import (
	"math"
	"slices"
	"time"
)

type Car struct {
	Id               string     `json:"id"`
	Name             string     `json:"name"`
	Image            string     `json:"image"`
	Series           string     `json:"series"`
	Tags             []string   `json:"tags"`
	TotalRatingScore float64    `json:"totalRatingScore"`
	RatingCount      int        `json:"ratingCount"`
	AddedAt          *time.Time `json:"addedAt,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// TagSet returns the tags, never nil.
func (c Car) TagSet() []string {
	if c.Tags == nil {
		return []string{}
	}
	return c.Tags
}

func (c Car) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// AverageRating is totalRatingScore / ratingCount, or 0 for unrated cars.
func (c Car) AverageRating() float64 {
	if c.RatingCount <= 0 {
		return 0
	}
	return c.TotalRatingScore / float64(c.RatingCount)
}

// DisplayRating is the average rounded to one decimal.
func (c Car) DisplayRating() float64 {
	return math.Round(c.AverageRating()*10) / 10
}

// WithTag returns a copy of c whose tags include tag exactly once.
func (c Car) WithTag(tag string) Car {
	if c.HasTag(tag) {
		return c
	}
	tags := make([]string, 0, len(c.Tags)+1)
	tags = append(tags, c.Tags...)
	c.Tags = append(tags, tag)
	return c
}
