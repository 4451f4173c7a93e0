package cmd

import (
	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the leaderboard interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return tui.Run(ctx, newClient(), tui.Options{
			Timeout:  store.Timeout(),
			PageSize: 20,
		})
	},
}
