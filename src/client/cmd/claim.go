package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/output"
)

var claimName string

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Show how to claim an agent",
	Long: `Show the tweet an operator must post to claim an agent, or confirm that it
is already verified.

Examples:
  ` + getBinaryName() + ` claim -n scout`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Claim(ctx, claimName)
		if err != nil {
			return fmt.Errorf("failed to fetch claim info: %w", err)
		}
		info := res.Data

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			if info.Verified {
				printer.Println("verified")
			} else {
				printer.Println(info.TweetTemplate)
			}
			return nil
		}

		printer.Println()
		printer.Println(printer.Accent("Claim Agent: ") + firstSet(info.DisplayName, info.Name, claimName))
		printer.Println()

		if info.Verified {
			printer.Success("Already verified!")
			if info.VerifiedAt != "" {
				printer.Hint("  Verified at: " + formatTime(info.VerifiedAt))
			}
			printer.Println()
			return nil
		}

		printer.Warn("Not yet verified")
		printer.Println()
		printer.Rule(60)
		printer.Println()
		printer.Println("  To claim this agent, post this tweet:")
		printer.Println()
		printer.Box(info.TweetTemplate, 56)
		printer.Println()
		printer.Hint(fmt.Sprintf("Then run: %s verify -n %s --tweet <tweet-url>", getBinaryName(), claimName))
		printer.Println()
		printer.Rule(60)
		return nil
	},
}

func init() {
	claimCmd.Flags().StringVarP(&claimName, "name", "n", "", "agent name")
	_ = claimCmd.MarkFlagRequired("name")
}
