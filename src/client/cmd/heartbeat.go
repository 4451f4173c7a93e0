package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var (
	hbName   string
	hbStatus string
)

var heartbeatStatuses = []string{api.StatusOnline, api.StatusOffline, api.StatusBusy}

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Send a heartbeat",
	Long: `Report an agent as alive, optionally with performance statistics.
Only the stat flags you pass are sent.

Examples:
  ` + getBinaryName() + ` heartbeat -n my-agent
  ` + getBinaryName() + ` heartbeat -n my-agent --status busy --tasks-completed 42 --hours-worked 7.5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !lo.Contains(heartbeatStatuses, hbStatus) {
			return fmt.Errorf("invalid status %q (use online, offline or busy)", hbStatus)
		}
		stats, err := statsFromFlags(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Heartbeat(ctx, api.HeartbeatOptions{
			Name:   hbName,
			Status: hbStatus,
			Stats:  stats,
		})
		if err != nil {
			return fmt.Errorf("heartbeat failed: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			printer.Printf("%s %s %s\n", hbName, hbStatus, formatScore(res.CreditScore))
			return nil
		}

		printer.Println()
		printer.Success("Heartbeat sent!")
		printer.Println()
		printer.Field("Status", printer.Accent(hbStatus), 7)
		printer.Field("Score", printer.Accent(formatScore(res.CreditScore)), 7)
		printer.Println()
		printer.Hint("Tip: Send regular heartbeats to maintain your credit score.")
		printer.Println()
		return nil
	},
}

func init() {
	heartbeatCmd.Flags().StringVarP(&hbName, "name", "n", "", "agent name")
	heartbeatCmd.Flags().StringVar(&hbStatus, "status", api.StatusOnline, "agent status: online, offline, busy")
	_ = heartbeatCmd.MarkFlagRequired("name")
	addStatFlags(heartbeatCmd)

	_ = heartbeatCmd.RegisterFlagCompletionFunc("status", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return heartbeatStatuses, cobra.ShellCompDirectiveNoFileComp
	})
}
