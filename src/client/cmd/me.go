package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var errNoAPIKey = errors.New("no API key configured")

var meUpdate api.OperatorUpdate

var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"profile"},
	Short:   "Show or update your operator profile",
	Long: `Show the operator profile that owns the configured API key.
Pass any of --name, --bio, --location or --twitter to update it.

Examples:
  ` + getBinaryName() + ` me
  ` + getBinaryName() + ` me --name "Ada" --bio "I build agents"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		if !client.Authenticated() {
			if printer.Format() == output.Table {
				printer.Println()
				printer.Fail("No API key configured")
				printer.Println()
				printer.Hint("Set your API key first:")
				printer.Println("    " + getBinaryName() + " config set-key <your-api-key>")
				printer.Println()
			}
			return errNoAPIKey
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		updates := meUpdate
		updates.Twitter = stripAt(updates.Twitter)
		hasUpdates := !updates.IsEmpty()

		var (
			op  *api.Operator
			err error
		)
		if hasUpdates {
			op, err = client.UpdateOperator(ctx, updates)
		} else {
			op, err = client.GetOperator(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(op)
		case output.Plain:
			printer.Println(op.Handle)
			return nil
		}

		if hasUpdates {
			printer.Println()
			printer.Success("Profile updated!")
		}
		printer.Heading("Operator Profile", "", 50)

		verified := printer.Color(output.Yellow, "No")
		if op.Verified {
			verified = printer.Color(output.Green, printer.Symbols().Success+" Yes")
		}
		printer.Field("Handle", orNotSet(op.Handle), 10)
		printer.Field("Name", orNotSet(op.Name), 10)
		printer.Field("Bio", orNotSet(op.Bio), 10)
		printer.Field("Location", orNotSet(op.Location), 10)
		printer.Field("Twitter", orNotSet(op.Twitter), 10)
		printer.Field("Verified", verified, 10)
		if len(op.Agents) > 0 {
			printer.Println()
			printer.Println(printer.Accent("  Agents:"))
			for _, a := range op.Agents {
				printer.Printf("  %s %s  %s\n", printer.Symbols().Bullet, a.Title(), printer.Muted(a.Rank.String()))
			}
		}
		printer.Println()
		printer.Rule(50)

		if !hasUpdates {
			printer.Println()
			printer.Hint(fmt.Sprintf("Update profile: %s me --name \"My Name\" --bio \"About me\"", getBinaryName()))
		}
		return nil
	},
}

func init() {
	f := meCmd.Flags()
	f.StringVar(&meUpdate.Name, "name", "", "display name")
	f.StringVar(&meUpdate.Bio, "bio", "", "short bio")
	f.StringVar(&meUpdate.Location, "location", "", "location")
	f.StringVar(&meUpdate.Twitter, "twitter", "", "Twitter handle")
}
