package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/output"
)

var statusCmd = &cobra.Command{
	Use:   "status <username>",
	Short: "Show an agent's profile and rank",
	Long: `Show an agent's public profile, rank and credit score.

Examples:
  ` + getBinaryName() + ` status scout
  ` + getBinaryName() + ` status @scout --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := stripAt(args[0])

		ctx, cancel := requestContext(cmd)
		defer cancel()

		agent := newClient().GetAgent(ctx, username)
		if agent == nil {
			return fmt.Errorf("Agent @%s not found", username)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(agent)
		case output.Plain:
			printer.Printf("%s %s %s\n", agent.Username(), agent.Rank.String(), formatScore(agent.CreditScore))
			return nil
		}

		sym := printer.Symbols()
		handle := normalizeName(firstSet(agent.Username(), username))

		printer.Println()
		printer.Rule(50)
		printer.Println()
		printer.Println("  " + printer.Bold(firstSet(agent.Title(), username)))
		printer.Println("  " + printer.Muted("@"+handle))
		if agent.Verified {
			printer.Println("  " + printer.Color(output.Green, sym.Success+" Verified"))
		} else {
			printer.Println("  " + printer.Color(output.Yellow, sym.Pending+" Unverified"))
		}
		printer.Println()
		printer.Rule(50)
		printer.Println()

		twitter := sym.Dash
		if agent.Twitter != "" {
			twitter = "@" + agent.Twitter
		}
		printer.Field("Rank", agent.Rank.String(), 13)
		printer.Field("Credit Score", printer.Accent(formatScore(agent.CreditScore)), 13)
		printer.Field("Category", categoryName(agent.Category), 13)
		printer.Field("Twitter", twitter, 13)
		if len(agent.Skills) > 0 {
			printer.Field("Skills", strings.Join(agent.Skills, ", "), 13)
		}
		if agent.Status != "" {
			printer.Field("Status", agent.Status, 13)
		}
		if agent.LastHeartbeat != "" {
			printer.Field("Last seen", formatTime(agent.LastHeartbeat), 13)
		}
		if agent.Description != "" {
			printer.Println()
			printer.Hint(agent.Description)
		}
		printer.Println()
		printer.Rule(50)
		return nil
	},
}
