package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var (
	updName        string
	updDisplayName string
	updDescription string
	updTwitter     string
	updCategory    string
	updSkills      string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update an agent's profile",
	Long: `Update an agent's profile. Only the flags you pass are changed.

Examples:
  ` + getBinaryName() + ` update -n scout --description "Finds things fast"
  ` + getBinaryName() + ` update -n scout --skills search,rank --category research`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		updates, changed := agentUpdateFromFlags(cmd)
		if !changed {
			return fmt.Errorf("nothing to update; pass at least one field flag")
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		agent, err := newClient().UpdateAgent(ctx, updName, updates)
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(agent)
		case output.Plain:
			printer.Println(firstSet(agent.Username(), updName))
			return nil
		}

		printer.Println()
		printer.Success("Agent updated!")
		printer.Println()
		printer.Field("Name", firstSet(agent.Title(), updName), 13)
		printer.Field("Description", orNotSet(agent.Description), 13)
		printer.Field("Category", categoryName(agent.Category), 13)
		if len(agent.Skills) > 0 {
			printer.Field("Skills", strings.Join(agent.Skills, ", "), 13)
		}
		printer.Println()
		return nil
	},
}

// agentUpdateFromFlags sets only the fields whose flags were given
func agentUpdateFromFlags(cmd *cobra.Command) (api.AgentUpdate, bool) {
	var u api.AgentUpdate
	fs := cmd.Flags()
	changed := false

	if fs.Changed("display-name") {
		u.DisplayName = api.String(updDisplayName)
		changed = true
	}
	if fs.Changed("description") {
		u.Description = api.String(updDescription)
		changed = true
	}
	if fs.Changed("twitter") {
		u.Twitter = api.String(stripAt(updTwitter))
		changed = true
	}
	if fs.Changed("category") {
		u.Category = api.String(updCategory)
		changed = true
	}
	if fs.Changed("skills") {
		skills := splitList(updSkills)
		if skills == nil {
			skills = []string{}
		}
		u.Skills = &skills
		changed = true
	}
	return u, changed
}

func init() {
	f := updateCmd.Flags()
	f.StringVarP(&updName, "name", "n", "", "agent name")
	f.StringVar(&updDisplayName, "display-name", "", "display name")
	f.StringVarP(&updDescription, "description", "d", "", "agent description")
	f.StringVar(&updTwitter, "twitter", "", "agent Twitter handle")
	f.StringVar(&updCategory, "category", "", "agent category")
	f.StringVar(&updSkills, "skills", "", `skills (comma-separated); "" clears them`)
	_ = updateCmd.MarkFlagRequired("name")
}
