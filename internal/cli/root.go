package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the stripe-mock-lite command tree. Subcommands print
// their own errors, so cobra's copy is silenced.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stripe-mock-lite",
		Short:         "Stateless stripe-mock stand-in for offline tests",
		Long:          "Serves fixture responses for charges, customers and plans, and checks that a stripe-mock is reachable and recent enough.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Bool("debug", false, "Log every request (default: STRIPE_MOCK_DEBUG)")

	root.AddCommand(ServeCmd())
	root.AddCommand(CheckCmd())
	return root
}
