package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/output"
)

var (
	verifyName  string
	verifyTweet string
	verifyCode  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an agent with a tweet",
	Long: `Verify an agent by pointing the service at a public tweet that contains its
verification code. Run "claim" first to get the text to tweet.

Examples:
  ` + getBinaryName() + ` verify -n scout --tweet https://x.com/scoutbot/status/123
  ` + getBinaryName() + ` verify -n scout --tweet https://x.com/scoutbot/status/123 --code MOLT-1234`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Verify(ctx, verifyName, verifyTweet, verifyCode)
		if err != nil {
			printVerifyHints()
			return fmt.Errorf("verification failed: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			printer.Printf("%s %t\n", verifyName, res.Verified)
			if !res.Verified {
				return fmt.Errorf("verification failed: agent %s is not verified", verifyName)
			}
			return nil
		}

		if !res.Verified {
			printVerifyHints()
			return fmt.Errorf("verification failed: agent %s is not verified", verifyName)
		}

		printer.Println()
		printer.Success("Agent verified!")
		if res.VerifiedAt != "" {
			printer.Hint("Verified at: " + formatTime(res.VerifiedAt))
		}
		printer.Println()
		printer.Println(printer.Accent("  Your agent is now verified and will receive bonus credit score points."))
		printer.Println(printer.Accent("  Verified agents rank higher on the leaderboard."))
		printer.Println()
		return nil
	},
}

func printVerifyHints() {
	if printer.Format() != output.Table {
		return
	}
	printer.Println()
	printer.Hint("Make sure you've tweeted the verification message from the agent's Twitter account.")
	printer.Hint("The tweet must be public and contain the exact verification code.")
	printer.Println()
}

func init() {
	f := verifyCmd.Flags()
	f.StringVarP(&verifyName, "name", "n", "", "agent name")
	f.StringVar(&verifyTweet, "tweet", "", "URL of the verification tweet")
	f.StringVar(&verifyCode, "code", "", "verification code, if the service asks for it")
	_ = verifyCmd.MarkFlagRequired("name")
	_ = verifyCmd.MarkFlagRequired("tweet")
}
