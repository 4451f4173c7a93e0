package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/cache"
	"github.com/topmolt/cli/src/client/logging"
	"github.com/topmolt/cli/src/client/output"
)

var catNoCache bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List agent categories",
	Long: `List leaderboard categories and how many agents each holds.
Results are cached for cache.ttl seconds; --no-cache fetches fresh data.

Examples:
  ` + getBinaryName() + ` categories
  ` + getBinaryName() + ` categories --no-cache`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()

		cats, err := cachedCategories(cmd, client)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(cats)
		case output.Plain:
			for _, c := range cats {
				printer.Printf("%s %d\n", c.ID, c.AgentCount)
			}
			return nil
		}

		printer.Heading("Agent Categories", "", 50)

		if len(cats) == 0 {
			printer.Hint("No categories found.")
			printer.Println()
			return nil
		}

		rows := make([][]string, 0, len(cats))
		for _, c := range cats {
			name := firstSet(c.Name, c.ID)
			if c.Emoji != "" {
				name = c.Emoji + " " + name
			}
			rows = append(rows, []string{"  " + output.Truncate(name, 28), strconv.Itoa(c.AgentCount)})
		}
		if err := printer.Table([]string{"  CATEGORY", "AGENTS"}, rows); err != nil {
			return err
		}

		printer.Println()
		printer.Hint(fmt.Sprintf("%d categories total", len(cats)))
		printer.Println()
		printer.Rule(50)
		return nil
	},
}

// cachedCategories serves categories from the response cache unless --no-cache is given.
// Entries are keyed by base URL so switching servers never mixes results.
func cachedCategories(cmd *cobra.Command, client *api.Client) ([]api.Category, error) {
	log := logging.Logger()
	key := "categories:" + client.BaseURL()

	c, err := cache.New(store.CacheConfig())
	if err != nil {
		log.Warn("cache unavailable", "error", err)
	}

	var cats []api.Category
	if !catNoCache && c.GetJSON(key, &cats) {
		log.Debug("categories served from cache", "key", key)
		return cats, nil
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	cats, err = client.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.SetJSON(key, cats); err != nil {
		log.Warn("could not cache categories", "error", err)
	}
	return cats, nil
}
