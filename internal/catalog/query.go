package catalog

import (
	"errors"
	"slices"
)

const PageSize = 24

type SortKey string

const (
	NameAsc    SortKey = "name-asc"
	NameDesc   SortKey = "name-desc"
	RatingAsc  SortKey = "rating-asc"
	RatingDesc SortKey = "rating-desc"
	SeriesAsc  SortKey = "series-asc"
	SeriesDesc SortKey = "series-desc"
)

var SortKeys = []SortKey{NameAsc, NameDesc, RatingAsc, RatingDesc, SeriesAsc, SeriesDesc}

// CollectionFilter restricts the view to one of the session's sets.
type CollectionFilter string

const (
	AllCars      CollectionFilter = "all"
	OwnedOnly    CollectionFilter = "owned"
	WishlistOnly CollectionFilter = "wishlist"
)

var (
	ErrInvalidSort       = errors.New("sort must be one of name-asc, name-desc, rating-asc, rating-desc, series-asc, series-desc")
	ErrInvalidCollection = errors.New("collection filter must be one of all, owned, wishlist")
)

// ParseSort maps an empty value to the default name-asc.
func ParseSort(value string) (SortKey, error) {
	if value == "" {
		return NameAsc, nil
	}
	if slices.Contains(SortKeys, SortKey(value)) {
		return SortKey(value), nil
	}
	return "", ErrInvalidSort
}

func ParseCollection(value string) (CollectionFilter, error) {
	switch CollectionFilter(value) {
	case "", AllCars:
		return AllCars, nil
	case OwnedOnly, WishlistOnly:
		return CollectionFilter(value), nil
	}
	return "", ErrInvalidCollection
}

// Query is the control state the view is derived from. Page is 1-based.
type Query struct {
	Search     string           `json:"search"`
	Sort       SortKey          `json:"sort"`
	Tags       []string         `json:"tags"`
	Series     []string         `json:"series"`
	Collection CollectionFilter `json:"collection"`
	Page       int              `json:"page"`
}

func DefaultQuery() Query {
	return Query{Sort: NameAsc, Collection: AllCars, Page: 1}
}

/*
Controls owns a Query the way the catalog screen does: every change to the
search text, filters, sort key or collection filter sends the user back to
page 1, and paging never leaves [1, totalPages].
*/
type Controls struct {
	query Query
}

func NewControls() *Controls {
	return &Controls{query: DefaultQuery()}
}

func (c *Controls) Query() Query {
	q := c.query
	q.Tags = slices.Clone(q.Tags)
	q.Series = slices.Clone(q.Series)
	return q
}

func (c *Controls) SetSearch(search string) {
	c.query.Search = search
	c.query.Page = 1
}

func (c *Controls) SetSort(key SortKey) {
	c.query.Sort = key
	c.query.Page = 1
}

func (c *Controls) SetTags(tags ...string) {
	c.query.Tags = slices.Clone(tags)
	c.query.Page = 1
}

// ToggleTag adds the tag to the filter or removes it when already selected.
func (c *Controls) ToggleTag(tag string) {
	c.query.Tags = toggle(c.query.Tags, tag)
	c.query.Page = 1
}

func (c *Controls) SetSeries(series ...string) {
	c.query.Series = slices.Clone(series)
	c.query.Page = 1
}

func (c *Controls) ToggleSeries(series string) {
	c.query.Series = toggle(c.query.Series, series)
	c.query.Page = 1
}

func (c *Controls) SetCollection(filter CollectionFilter) {
	c.query.Collection = filter
	c.query.Page = 1
}

func (c *Controls) ClearFilters() {
	c.query.Tags = nil
	c.query.Series = nil
	c.query.Collection = AllCars
	c.query.Page = 1
}

// Next moves forward unless already on the last page.
func (c *Controls) Next(totalPages int) bool {
	if c.query.Page >= totalPages {
		return false
	}
	c.query.Page++
	return true
}

// Prev moves back unless already on the first page.
func (c *Controls) Prev() bool {
	if c.query.Page <= 1 {
		return false
	}
	c.query.Page--
	return true
}

func toggle(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		return slices.Delete(slices.Clone(values), i, i+1)
	}
	return append(slices.Clone(values), value)
}
