package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecommendCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show the best matched properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			return runRecommend(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "number of properties to show (0 for all)")

	return cmd
}

func runRecommend(cmd *cobra.Command, limit int) error {
	props, err := newAPIClient().Recommendations(limit)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), props)
	}
	return printPropertyTable(cmd.OutOrStdout(), props, true)
}
