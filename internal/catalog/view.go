// Package catalog derives the visible page of cars from the full list and
// the user's control state. Everything here is pure and deterministic.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lealre/carsdb-backend/internal/generics"
	"github.com/lealre/carsdb-backend/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Facets struct {
	Tags   []string `json:"tags"`
	Series []string `json:"series"`
}

type View struct {
	Page   generics.Page[models.Car] `json:"page"`
	Facets Facets                    `json:"facets"`
}

// Apply filters, sorts and paginates cars, in that order, and computes the
// facets of the unfiltered list. session may be nil. Out-of-range pages are
// not clamped and produce an empty slice.
func Apply(cars []models.Car, session *models.Profile, q Query) View {
	filtered := Filter(cars, session, q)
	Sort(filtered, q.Sort)

	total := len(filtered)
	return View{
		Page: generics.Page[models.Car]{
			Page:         q.Page,
			Size:         PageSize,
			TotalPages:   TotalPages(total),
			TotalResults: total,
			Content:      Paginate(filtered, q.Page),
		},
		Facets: FacetsOf(cars),
	}
}

// Filter returns a new slice with the cars matching every active filter.
func Filter(cars []models.Car, session *models.Profile, q Query) []models.Car {
	fold := cases.Fold()
	term := fold.String(q.Search)

	var collection models.Collection
	if session != nil {
		switch q.Collection {
		case OwnedOnly:
			collection = models.OwnedCars
		case WishlistOnly:
			collection = models.Wishlist
		}
	}

	out := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if term != "" && !matchesSearch(fold, car, term) {
			continue
		}
		if len(q.Series) > 0 && !slices.Contains(q.Series, car.Series) {
			continue
		}
		if len(q.Tags) > 0 && !slices.ContainsFunc(q.Tags, car.HasTag) {
			continue
		}
		if collection != "" && !session.Has(collection, car.Id) {
			continue
		}
		out = append(out, car)
	}
	return out
}

func matchesSearch(fold cases.Caser, car models.Car, term string) bool {
	if strings.Contains(fold.String(car.Name), term) || strings.Contains(fold.String(car.Series), term) {
		return true
	}
	for _, tag := range car.TagSet() {
		if strings.Contains(fold.String(tag), term) {
			return true
		}
	}
	return false
}

// Sort orders cars in place. Names and series compare case-insensitively
// first, and names differing only by case still get a fixed order. Equal keys
// keep their relative order.
func Sort(cars []models.Car, key SortKey) {
	col := collate.New(language.English)

	var compare func(a, b models.Car) int
	switch key {
	case NameDesc:
		compare = func(a, b models.Car) int { return col.CompareString(b.Name, a.Name) }
	case RatingAsc:
		compare = func(a, b models.Car) int { return cmp.Compare(a.AverageRating(), b.AverageRating()) }
	case RatingDesc:
		compare = func(a, b models.Car) int { return cmp.Compare(b.AverageRating(), a.AverageRating()) }
	case SeriesAsc:
		compare = func(a, b models.Car) int { return col.CompareString(a.Series, b.Series) }
	case SeriesDesc:
		compare = func(a, b models.Car) int { return col.CompareString(b.Series, a.Series) }
	default:
		compare = func(a, b models.Car) int { return col.CompareString(a.Name, b.Name) }
	}

	slices.SortStableFunc(cars, compare)
}

// Paginate returns the 1-based page of size PageSize.
func Paginate(cars []models.Car, page int) []models.Car {
	start := (page - 1) * PageSize
	if page < 1 || start >= len(cars) {
		return []models.Car{}
	}
	end := min(start+PageSize, len(cars))
	return cars[start:end]
}

// TotalPages is ceil(count / PageSize), at least 1.
func TotalPages(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + PageSize - 1) / PageSize
}

// FacetsOf lists the distinct tags and series of cars, sorted.
func FacetsOf(cars []models.Car) Facets {
	tags := map[string]struct{}{}
	series := map[string]struct{}{}
	for _, car := range cars {
		for _, tag := range car.TagSet() {
			tags[tag] = struct{}{}
		}
		if car.Series != "" {
			series[car.Series] = struct{}{}
		}
	}
	return Facets{Tags: sortedKeys(tags), Series: sortedKeys(series)}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
