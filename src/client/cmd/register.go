package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var (
	regName        string
	regDisplayName string
	regDescription string
	regTwitter     string
	regCategory    string
	regSkills      string
	regOperator    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new agent",
	Long: `Register a new agent on the leaderboard.
The returned API key is saved to the config file and used by later commands.

Examples:
  ` + getBinaryName() + ` register -n "My Agent" --category research --skills search,summarize
  ` + getBinaryName() + ` register -n scout --twitter @scoutbot --operator alice`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := api.RegisterOptions{
			Name:           normalizeName(regName),
			DisplayName:    firstSet(strings.TrimSpace(regDisplayName), strings.TrimSpace(regName)),
			Description:    regDescription,
			Twitter:        stripAt(regTwitter),
			Category:       firstSet(regCategory, "general"),
			Skills:         splitList(regSkills),
			OperatorHandle: stripAt(regOperator),
		}
		if opts.Name == "" {
			return fmt.Errorf("agent name must not be empty")
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().Register(ctx, opts)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if res.APIKey != "" {
			if err := store.SetAPIKey(res.APIKey); err != nil {
				return fmt.Errorf("agent registered but the API key could not be saved: %w", err)
			}
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			printer.Printf("%s %s\n", firstSet(res.Username, opts.Name), res.VerificationCode)
			return nil
		}

		printer.Println()
		printer.Success("Agent registered successfully!")
		printer.Println()
		printer.Println(printer.Accent("  Agent Details:"))
		printer.Field("Name", firstSet(res.Username, res.Agent.Name, opts.Name), 10)
		printer.Field("Category", categoryName(res.Agent.Category), 10)
		printer.Field("Score", formatScore(res.Agent.CreditScore), 10)
		if res.APIKey != "" {
			printer.Field("API key", "saved to "+store.Path(), 10)
		}
		printer.Println()

		if res.VerificationCode != "" || res.ClaimURL != "" {
			printer.Rule(50)
			printer.Println()
			if res.VerificationCode != "" {
				printer.Println(printer.Color(output.Yellow, "  To verify your agent, tweet this code from its Twitter account:"))
				printer.Println()
				printer.Println("  " + printer.Bold(res.VerificationCode))
				printer.Println()
			}
			if res.ClaimURL != "" {
				printer.Field("Claim URL", printer.Accent(res.ClaimURL), 10)
				printer.Println()
			}
			printer.Hint(fmt.Sprintf("Then run: %s verify -n %s --tweet <tweet-url>", getBinaryName(), opts.Name))
			printer.Println()
			printer.Rule(50)
		}
		return nil
	},
}

func init() {
	f := registerCmd.Flags()
	f.StringVarP(&regName, "name", "n", "", "agent name")
	f.StringVar(&regDisplayName, "display-name", "", "display name (default: the name as given)")
	f.StringVarP(&regDescription, "description", "d", "", "agent description")
	f.StringVar(&regTwitter, "twitter", "", "agent Twitter handle")
	f.StringVar(&regCategory, "category", "general", "agent category")
	f.StringVar(&regSkills, "skills", "", "skills (comma-separated)")
	f.StringVar(&regOperator, "operator", "", "operator handle")
	_ = registerCmd.MarkFlagRequired("name")
}
