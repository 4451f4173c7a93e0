package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/topmolt/cli/src/client/config"
	"github.com/topmolt/cli/src/client/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Show and change the settings stored in the config file.

Keys:
  server.address    service base URL
  server.token      API key
  server.timeout    request timeout in seconds
  output.format     table, json or plain
  output.color      auto, always or never
  logging.level     debug, info, warn or error
  cache.enabled     cache category listings
  cache.ttl         cache lifetime in seconds`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := store.Redacted()
		if printer.Format() == output.JSON {
			return printer.JSON(settings)
		}
		out, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		printer.Printf("# %s\n%s", store.Path(), out)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := store.Get(args[0])
		if value == nil {
			return fmt.Errorf("key not found: %s", args[0])
		}
		if args[0] == config.KeyServerToken {
			value = config.MaskKey(fmt.Sprint(value))
		}
		if m, ok := value.(map[string]any); ok {
			out, err := yaml.Marshal(m)
			if err != nil {
				return err
			}
			printer.Printf("%s", out)
			return nil
		}
		printer.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]
		if !lo.Contains(knownKeys(), key) {
			return fmt.Errorf("unknown key: %s (known: %s)", key, strings.Join(knownKeys(), ", "))
		}

		var err error
		switch key {
		case config.KeyServerAddress:
			err = store.SetBaseURL(value)
		case config.KeyServerToken:
			err = store.SetAPIKey(value)
		default:
			err = store.Set(key, value)
		}
		if err != nil {
			return err
		}

		if key == config.KeyServerToken {
			value = config.MaskKey(value)
		}
		printer.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(store.Path()); err == nil {
			return fmt.Errorf("config already exists: %s", store.Path())
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		printer.Printf("Created config file: %s\n", store.Path())
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Save the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("API key cannot be empty")
		}
		if err := store.SetAPIKey(args[0]); err != nil {
			return err
		}
		printer.Success("API key saved")
		return nil
	},
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url <base-url>",
	Short: "Save the service base URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := strings.TrimSpace(args[0])
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("base URL must start with http:// or https://")
		}
		if err := store.SetBaseURL(u); err != nil {
			return err
		}
		printer.Success("Base URL set to " + store.Credentials().BaseURL)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the config file and restore defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Reset(); err != nil {
			return err
		}
		printer.Success("Configuration reset")
		return nil
	},
}

func knownKeys() []string {
	keys := []string{
		config.KeyServerAddress, config.KeyServerToken, config.KeyServerTimeout,
		config.KeyOutputFormat, config.KeyOutputColor,
		config.KeyLogLevel, config.KeyLogFile, config.KeyLogMaxSize, config.KeyLogMaxFiles,
		config.KeyCacheEnabled, config.KeyCacheTTL, config.KeyCacheMaxSize,
	}
	sort.Strings(keys)
	return keys
}

func init() {
	configCmd.AddCommand(
		configShowCmd,
		configGetCmd,
		configSetCmd,
		configInitCmd,
		configSetKeyCmd,
		configSetURLCmd,
		configResetCmd,
	)
	configSetCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return knownKeys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
