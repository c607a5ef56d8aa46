package models

import "math"

const (
	MaxRating  = 5.0
	RatingStep = 0.5
)

// IsValidRating accepts 0 (cleared) and half steps from 0.5 to 5.
func IsValidRating(value float64) bool {
	if math.IsNaN(value) || value < 0 || value > MaxRating {
		return false
	}
	steps := value / RatingStep
	return steps == math.Trunc(steps)
}
