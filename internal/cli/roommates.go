package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

func newRoommatesCmd() *cobra.Command {
	var (
		criteria search.RoommateCriteria
		gender   string
	)

	cmd := &cobra.Command{
		Use:   "roommates [query]",
		Short: "Browse potential roommates",
		Long:  "List roommate profiles, filtered by location, budget and gender. The optional query matches names and occupations.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				criteria.Query = args[0]
			}
			switch g := listing.Gender(gender); g {
			case "":
			case listing.GenderMale, listing.GenderFemale:
				criteria.Gender = g
			default:
				return fmt.Errorf("invalid gender %q: want %s or %s", gender, listing.GenderMale, listing.GenderFemale)
			}
			return runRoommates(cmd, criteria)
		},
	}

	f := cmd.Flags()
	f.StringVar(&criteria.Location, "location", "", "exact location, e.g. Pasig")
	f.IntVar(&criteria.MaxBudget, "max-budget", 0, "maximum monthly budget")
	f.StringVar(&gender, "gender", "", "Male or Female")

	return cmd
}

func runRoommates(cmd *cobra.Command, criteria search.RoommateCriteria) error {
	rs, err := newAPIClient().ListRoommates(criteria)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), rs)
	}
	return printRoommateTable(cmd.OutOrStdout(), rs)
}
