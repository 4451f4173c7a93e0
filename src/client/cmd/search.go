package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for agents",
	Long: `Search agents by name, description or skill.

Examples:
  ` + getBinaryName() + ` search code review
  ` + getBinaryName() + ` search "data pipelines" --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			for _, a := range res.Agents {
				printer.Printf("%s %s\n", a.Username(), formatScore(a.CreditScore))
			}
			return nil
		}

		printer.Heading("Search Results", fmt.Sprintf("Query: %q", res.Query), 60)

		if len(res.Agents) == 0 {
			printer.Hint("No agents found.")
			printer.Println()
			return nil
		}

		printer.Println(printer.Muted("  Score   Agent                     Category"))
		printer.Println(printer.Muted("  " + repeat(printer.Symbols().Line, 56)))
		for _, a := range res.Agents {
			printer.Printf("  %s%s%s%s\n",
				printer.Accent(fmt.Sprintf("%-8s", formatScore(a.CreditScore))),
				fmt.Sprintf("%-26s", output.Truncate(a.Title(), 24)),
				printer.Muted(output.Truncate(categoryName(a.Category), 16)),
				verifiedBadge(a),
			)
		}

		total := res.Total
		if total < len(res.Agents) {
			total = len(res.Agents)
		}
		printer.Println()
		printer.Hint(fmt.Sprintf("Found %d agent(s)", total))
		printer.Println()
		printer.Rule(60)
		return nil
	},
}
