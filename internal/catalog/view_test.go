package catalog

import (
	"fmt"
	"slices"
	"testing"

	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func names(cars []models.Car) []string {
	out := make([]string, len(cars))
	for i, c := range cars {
		out[i] = c.Name
	}
	return out
}

func manyCars(n int) []models.Car {
	cars := make([]models.Car, n)
	for i := range cars {
		cars[i] = models.Car{
			Id:     fmt.Sprintf("id-%03d", i),
			Name:   fmt.Sprintf("Car %03d", i),
			Series: models.SeriesOptions[i%3],
		}
	}
	return cars
}

func fixture() []models.Car {
	return []models.Car{
		{Id: "1", Name: "Mater", Series: "Cars", Tags: []string{"Tow"}, TotalRatingScore: 9, RatingCount: 2},
		{Id: "2", Name: "Lightning", Series: "Cars", TotalRatingScore: 0, RatingCount: 0},
		{Id: "3", Name: "dusty", Series: "Planes", Tags: []string{"Exclusive", "Air"}, TotalRatingScore: 5, RatingCount: 2},
		{Id: "4", Name: "Francesco", Series: "Cars 2", Tags: []string{"Exclusive"}, TotalRatingScore: 4, RatingCount: 1},
	}
}

func TestApplyScenario(t *testing.T) {
	lightning := models.Car{Id: "l", Name: "Lightning", Series: "Cars", Tags: []string{}}
	mater := models.Car{Id: "m", Name: "Mater", Series: "Cars"}

	t.Run("Search by a name prefix includes the car", func(t *testing.T) {
		q := DefaultQuery()
		q.Search = "Light"
		view := Apply([]models.Car{lightning}, nil, q)
		require.Equal(t, []string{"Lightning"}, names(view.Page.Content))
	})

	t.Run("Search for an unrelated term excludes the car", func(t *testing.T) {
		q := DefaultQuery()
		q.Search = "McQueen"
		view := Apply([]models.Car{lightning}, nil, q)
		require.Empty(t, view.Page.Content)
		require.Equal(t, 1, view.Page.TotalPages)
	})

	t.Run("Name ascending puts Lightning before Mater", func(t *testing.T) {
		view := Apply([]models.Car{mater, lightning}, nil, DefaultQuery())
		require.Equal(t, []string{"Lightning", "Mater"}, names(view.Page.Content))
	})
}

func TestFilter(t *testing.T) {
	cars := fixture()

	t.Run("Search is case-insensitive over name, series and tags", func(t *testing.T) {
		require.Equal(t, []string{"dusty"}, names(Filter(cars, nil, Query{Search: "DUST"})))
		require.Equal(t, []string{"dusty"}, names(Filter(cars, nil, Query{Search: "planes"})))
		require.Equal(t, []string{"Mater"}, names(Filter(cars, nil, Query{Search: "tow"})))
		require.Len(t, Filter(cars, nil, Query{Search: "cars"}), 3)
	})

	t.Run("Tag filters use OR semantics", func(t *testing.T) {
		got := Filter(cars, nil, Query{Tags: []string{"Tow", "Air"}})
		require.Equal(t, []string{"Mater", "dusty"}, names(got))
	})

	t.Run("Series filters restrict to the selected series", func(t *testing.T) {
		got := Filter(cars, nil, Query{Series: []string{"Planes", "Cars 2"}})
		require.Equal(t, []string{"dusty", "Francesco"}, names(got))
	})

	t.Run("Filters combine as a conjunction", func(t *testing.T) {
		got := Filter(cars, nil, Query{Tags: []string{"Exclusive"}, Series: []string{"Cars 2"}})
		require.Equal(t, []string{"Francesco"}, names(got))
	})

	t.Run("Collection filter applies only with a session", func(t *testing.T) {
		session := &models.Profile{OwnedCars: []string{"2"}, Wishlist: []string{"3", "4"}}

		require.Len(t, Filter(cars, nil, Query{Collection: OwnedOnly}), 4)
		require.Equal(t, []string{"Lightning"}, names(Filter(cars, session, Query{Collection: OwnedOnly})))
		require.Equal(t, []string{"dusty", "Francesco"}, names(Filter(cars, session, Query{Collection: WishlistOnly})))
		require.Len(t, Filter(cars, session, Query{Collection: AllCars}), 4)
	})

	t.Run("Adding a filter never grows the result", func(t *testing.T) {
		session := &models.Profile{OwnedCars: []string{"1", "3"}}
		queries := []Query{
			{},
			{Search: "a"},
			{Search: "a", Tags: []string{"Exclusive", "Tow"}},
			{Search: "a", Tags: []string{"Exclusive", "Tow"}, Series: []string{"Planes", "Cars"}},
			{Search: "a", Tags: []string{"Exclusive", "Tow"}, Series: []string{"Planes", "Cars"}, Collection: OwnedOnly},
		}
		prev := len(cars) + 1
		for _, q := range queries {
			n := len(Filter(cars, session, q))
			require.LessOrEqual(t, n, prev, "%+v", q)
			prev = n
		}
	})

	t.Run("Absent tags behave as empty", func(t *testing.T) {
		got := Filter([]models.Car{{Name: "No tags"}}, nil, Query{Tags: []string{"x"}})
		require.Empty(t, got)
	})
}

func TestSort(t *testing.T) {
	t.Run("Name sort is case-insensitive", func(t *testing.T) {
		cars := fixture()
		Sort(cars, NameAsc)
		require.Equal(t, []string{"dusty", "Francesco", "Lightning", "Mater"}, names(cars))
	})

	t.Run("Descending is the exact reverse for unique names", func(t *testing.T) {
		withCasePair := func() []models.Car {
			return append(fixture(), models.Car{Id: "5", Name: "mater", Series: "Cars"})
		}
		asc := withCasePair()
		Sort(asc, NameAsc)
		desc := withCasePair()
		Sort(desc, NameDesc)

		require.Len(t, desc, len(asc))
		for i := range asc {
			require.Equal(t, asc[i].Name, desc[len(desc)-1-i].Name)
		}
	})

	t.Run("Names differing only by case are not a tie", func(t *testing.T) {
		for _, input := range [][]models.Car{
			{{Name: "mater"}, {Name: "Mater"}},
			{{Name: "Mater"}, {Name: "mater"}},
		} {
			asc := slices.Clone(input)
			Sort(asc, NameAsc)
			desc := slices.Clone(input)
			Sort(desc, NameDesc)

			require.Equal(t, asc[0].Name, desc[1].Name)
			require.Equal(t, asc[1].Name, desc[0].Name)
			require.Equal(t, []string{"mater", "Mater"}, names(asc), "lowercase sorts first")
		}
	})

	t.Run("Rating sort treats unrated cars as 0 and is stable", func(t *testing.T) {
		cars := fixture()
		Sort(cars, RatingDesc)
		// Mater 4.5, Francesco 4, dusty 2.5, Lightning 0
		require.Equal(t, []string{"Mater", "Francesco", "dusty", "Lightning"}, names(cars))

		ties := []models.Car{
			{Name: "B", TotalRatingScore: 3, RatingCount: 1},
			{Name: "A", TotalRatingScore: 6, RatingCount: 2},
			{Name: "C"},
		}
		Sort(ties, RatingAsc)
		require.Equal(t, []string{"C", "B", "A"}, names(ties))
	})

	t.Run("Series sort orders by series", func(t *testing.T) {
		cars := fixture()
		Sort(cars, SeriesDesc)
		require.Equal(t, "Planes", cars[0].Series)
	})

	t.Run("Sorting is deterministic", func(t *testing.T) {
		a := fixture()
		b := fixture()
		Sort(a, RatingAsc)
		Sort(b, RatingAsc)
		require.Equal(t, a, b)
	})
}

func TestPagination(t *testing.T) {
	for _, n := range []int{0, 1, 23, 24, 25, 48, 49, 100} {
		t.Run(fmt.Sprintf("%d cars", n), func(t *testing.T) {
			cars := manyCars(n)
			first := Apply(cars, nil, DefaultQuery())

			expectedPages := (n + PageSize - 1) / PageSize
			if expectedPages < 1 {
				expectedPages = 1
			}
			require.Equal(t, expectedPages, first.Page.TotalPages)
			require.Equal(t, n, first.Page.TotalResults)

			seen := 0
			for page := 1; page <= first.Page.TotalPages; page++ {
				q := DefaultQuery()
				q.Page = page
				view := Apply(cars, nil, q)
				require.LessOrEqual(t, len(view.Page.Content), PageSize)
				seen += len(view.Page.Content)
			}
			require.Equal(t, n, seen)
		})
	}

	t.Run("Out of range pages are empty", func(t *testing.T) {
		cars := manyCars(30)
		require.Empty(t, Paginate(cars, 3))
		require.Empty(t, Paginate(cars, 0))
		require.Len(t, Paginate(cars, 2), 6)
	})
}

func TestFacetsOf(t *testing.T) {
	facets := FacetsOf(fixture())
	require.Equal(t, []string{"Air", "Exclusive", "Tow"}, facets.Tags)
	require.Equal(t, []string{"Cars", "Cars 2", "Planes"}, facets.Series)

	q := DefaultQuery()
	q.Search = "nothing matches"
	view := Apply(fixture(), nil, q)
	require.Equal(t, facets, view.Facets)
}

func TestApplyIsIdempotent(t *testing.T) {
	cars := fixture()
	q := Query{Sort: RatingDesc, Tags: []string{"Exclusive"}, Page: 1}
	require.Equal(t, Apply(cars, nil, q), Apply(cars, nil, q))
	require.Equal(t, "Mater", cars[0].Name, "input must not be reordered")
}
