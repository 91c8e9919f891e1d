// Package cli defines the cobra command tree for kwartayo.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/kwartayo/internal/client"
	"github.com/evcraddock/kwartayo/internal/config"
)

var (
	flagFormat string
	flagConfig string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kw",
		Short:         "Find rooms and roommates in Metro Manila",
		Long:          "Kwartayo is a rental marketplace. Run the web UI with 'kw serve', or search listings and roommates from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "server config file")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: $KW_SERVER_URL or http://localhost:8080)")

	root.AddCommand(
		newServeCmd(),
		newSearchCmd(),
		newShowCmd(),
		newRoommatesCmd(),
		newRecommendCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the kwartayo API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
