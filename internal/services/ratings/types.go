package ratings

// Aggregate is the per-car rating summary.
type Aggregate struct {
	TotalRatingScore float64 `json:"totalRatingScore"`
	RatingCount      int     `json:"ratingCount"`
}

type SetRatingRequest struct {
	Rating *float64 `json:"rating" validate:"required,rating"`
}
