package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/lealre/carsdb-backend/internal/catalog"
	"github.com/lealre/carsdb-backend/internal/models"
	"github.com/spf13/cobra"
)

var listFlags struct {
	search     string
	sort       string
	tags       []string
	series     []string
	collection string
	page       int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog with search, filters, sort and paging",
	RunE:  runList,
}

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "List the tags and series present in the catalog",
	RunE:  runFacets,
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.search, "search", "s", "", "Match name, series or tags")
	f.StringVar(&listFlags.sort, "sort", string(catalog.NameAsc), "One of "+joinSortKeys())
	f.StringSliceVar(&listFlags.tags, "tag", nil, "Keep cars with any of these tags (repeatable)")
	f.StringSliceVar(&listFlags.series, "series", nil, "Keep cars in any of these series (repeatable)")
	f.StringVar(&listFlags.collection, "collection", string(catalog.AllCars), "all, owned or wishlist")
	f.IntVarP(&listFlags.page, "page", "p", 1, "Page number")
}

func joinSortKeys() string {
	keys := make([]string, len(catalog.SortKeys))
	for i, k := range catalog.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func listQuery() (catalog.Query, error) {
	q := catalog.DefaultQuery()
	q.Search = strings.TrimSpace(listFlags.search)
	q.Tags = listFlags.tags
	q.Series = listFlags.series

	sortKey, err := catalog.ParseSort(listFlags.sort)
	if err != nil {
		return catalog.Query{}, err
	}
	q.Sort = sortKey

	collection, err := catalog.ParseCollection(listFlags.collection)
	if err != nil {
		return catalog.Query{}, err
	}
	q.Collection = collection

	if listFlags.page < 1 {
		return catalog.Query{}, fmt.Errorf("page must be a positive integer")
	}
	q.Page = listFlags.page
	return q, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	q, err := listQuery()
	if err != nil {
		return err
	}
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}

	view := c.LocalView(q)
	printCars(cmd.OutOrStdout(), view.Page.Content, c.App.Session)
	fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d cars)\n", view.Page.Page, view.Page.TotalPages, view.Page.TotalResults)
	return nil
}

func runFacets(cmd *cobra.Command, _ []string) error {
	c, err := resumeClient(cmd.Context())
	if err != nil {
		return err
	}

	facets := catalog.FacetsOf(c.App.Items)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tags:   %s\n", strings.Join(facets.Tags, ", "))
	fmt.Fprintf(out, "Series: %s\n", strings.Join(facets.Series, ", "))
	return nil
}

// printCars writes one row per car. The marks column shows O for owned and
// W for wishlisted cars of the session.
func printCars(out io.Writer, cars []models.Car, session *models.Profile) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSERIES\tRATING\tMINE\tMARKS\tTAGS")
	for _, car := range cars {
		mine := "-"
		if r := session.RatingFor(car.Id); r > 0 {
			mine = fmt.Sprintf("%.1f", r)
		}
		marks := ""
		if session != nil && session.Owns(car.Id) {
			marks += "O"
		}
		if session != nil && session.InWishlist(car.Id) {
			marks += "W"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f (%d)\t%s\t%s\t%s\n",
			car.Id, car.Name, car.Series, car.DisplayRating(), car.RatingCount, mine, marks, strings.Join(car.TagSet(), ", "))
	}
	w.Flush()
}
