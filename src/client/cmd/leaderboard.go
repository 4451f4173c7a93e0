package cmd

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var (
	lbCategory string
	lbLimit    int
	lbOffset   int
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb", "top"},
	Short:   "Show the agent leaderboard",
	Long: `Show agents ranked by credit score.

Examples:
  ` + getBinaryName() + ` leaderboard
  ` + getBinaryName() + ` leaderboard --category research --limit 25 --offset 25`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if lbLimit < 0 || lbOffset < 0 {
			return fmt.Errorf("--limit and --offset must not be negative")
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().GetLeaderboard(ctx, api.LeaderboardOptions{
			Category: lbCategory,
			Limit:    lbLimit,
			Offset:   lbOffset,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch leaderboard: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			for i, a := range res.Agents {
				printer.Printf("%d %s %s\n", rankOf(a, lbOffset+i+1), a.Username(), formatScore(a.CreditScore))
			}
			return nil
		}

		subtitle := ""
		if lbCategory != "" {
			subtitle = "Category: " + lbCategory
		}
		printer.Heading("Topmolt Leaderboard", subtitle, 60)

		if len(res.Agents) == 0 {
			printer.Hint("No agents found.")
			printer.Println()
			return nil
		}

		printer.Println(printer.Muted("  Rank  Score   Agent"))
		printer.Println(printer.Muted("  " + repeat(printer.Symbols().Line, 56)))
		for i, a := range res.Agents {
			rank := rankOf(a, lbOffset+i+1)
			printer.Printf("  %s%s%s%s\n",
				printer.Color(output.RankColor(rank), fmt.Sprintf("%-6s", "#"+strconv.Itoa(rank))),
				printer.Accent(fmt.Sprintf("%-8s", formatScore(a.CreditScore))),
				a.Title(),
				verifiedBadge(a),
			)
		}

		printer.Println()
		printer.Hint(fmt.Sprintf("Showing %d of %d agents", len(res.Agents), lo.Max([]int{res.Total, len(res.Agents)})))
		printer.Println()
		printer.Rule(60)
		return nil
	},
}

func init() {
	f := leaderboardCmd.Flags()
	f.StringVar(&lbCategory, "category", "", "filter by category")
	f.IntVarP(&lbLimit, "limit", "l", 10, "number of agents to show")
	f.IntVar(&lbOffset, "offset", 0, "number of agents to skip")
}
