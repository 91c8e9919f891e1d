package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/kwartayo/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		criteria search.PropertyCriteria
		sort     string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search available properties",
		Long:  "Search active property listings by location, price, rooms and amenities. The optional query matches titles and locations.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				criteria.Query = args[0]
			}
			criteria.Sort = search.ParseSortKey(sort)
			if criteria.MinPrice > criteria.MaxPrice {
				return fmt.Errorf("--min-price %d exceeds --max-price %d", criteria.MinPrice, criteria.MaxPrice)
			}
			return runSearch(cmd, criteria)
		},
	}

	f := cmd.Flags()
	f.StringVar(&criteria.Location, "location", "", "exact location, e.g. Makati")
	f.IntVar(&criteria.MinPrice, "min-price", search.DefaultMinPrice, "minimum monthly price")
	f.IntVar(&criteria.MaxPrice, "max-price", search.DefaultMaxPrice, "maximum monthly price")
	f.IntSliceVar(&criteria.Bedrooms, "bedrooms", nil, "accepted bedroom counts")
	f.IntSliceVar(&criteria.Bathrooms, "bathrooms", nil, "accepted bathroom counts")
	f.StringSliceVar(&criteria.Amenities, "amenities", nil, "required amenities")
	f.StringVar(&sort, "sort", string(search.SortRecent), "sort order (recent|price|rating)")

	return cmd
}

func runSearch(cmd *cobra.Command, criteria search.PropertyCriteria) error {
	props, err := newAPIClient().ListProperties(criteria)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), props)
	}
	return printPropertyTable(cmd.OutOrStdout(), props, false)
}
