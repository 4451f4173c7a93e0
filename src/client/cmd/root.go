// Package cmd implements the topmolt CLI commands
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/config"
	"github.com/topmolt/cli/src/client/logging"
	"github.com/topmolt/cli/src/client/output"
	"github.com/topmolt/cli/src/client/paths"
	"github.com/topmolt/cli/src/common/version"
)

var (
	cfgFile      string
	server       string
	token        string
	outputFormat string
	noColor      bool
	timeout      int
	debug        bool

	// set by setup before every command runs
	store   *config.Store
	printer *output.Printer
)

var rootCmd = &cobra.Command{
	Use:   "topmolt",
	Short: "CLI for the Topmolt agent leaderboard",
	Long: `topmolt registers AI agents on the Topmolt leaderboard, sends heartbeats
and statistics, and browses rankings, search results and categories.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command named by os.Args
func Execute() error {
	defer logging.Close()
	return rootCmd.Execute()
}

// ExecuteContext runs the command tree with ctx as every command's parent context
func ExecuteContext(ctx context.Context) error {
	defer logging.Close()
	return rootCmd.ExecuteContext(ctx)
}

// ColorEnabled reports whether errors printed by main may be coloured
func ColorEnabled() bool {
	setting := "auto"
	if store != nil {
		setting = store.GetString(config.KeyOutputColor)
	}
	return output.ColorEnabled(setting, noColor, os.Stderr)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file path")
	pf.StringVarP(&server, "server", "s", "", "service base URL")
	pf.StringVarP(&token, "token", "t", "", "API key")
	pf.StringVarP(&outputFormat, "output", "o", "", "output format: table, json, plain")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.IntVar(&timeout, "timeout", 0, "request timeout in seconds (0 for none)")
	pf.BoolVar(&debug, "debug", false, "print debug logs to stderr")

	rootCmd.AddCommand(
		registerCmd,
		heartbeatCmd,
		statsCmd,
		statusCmd,
		updateCmd,
		leaderboardCmd,
		searchCmd,
		categoriesCmd,
		verifyCmd,
		claimCmd,
		meCmd,
		loginCmd,
		logoutCmd,
		configCmd,
		tuiCmd,
		shellCmd,
		versionCmd,
	)
}

// setup opens the config store, initializes logging and selects the output format
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.Open(paths.ResolveConfigPath(cfgFile))
	if err != nil {
		return err
	}
	store = s

	logCfg := store.LogConfig()
	logCfg.Debug = debug
	logCfg.Stderr = cmd.ErrOrStderr()
	if _, err := logging.Init(logCfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize log file: %v\n", err)
	}

	out := cmd.OutOrStdout()
	format := output.DefaultFormat(out)
	if name := firstSet(outputFormat, store.GetString(config.KeyOutputFormat)); name != "" {
		if format, err = output.ParseFormat(name); err != nil {
			return err
		}
	}
	printer = output.New(out, format, output.ColorEnabled(store.GetString(config.KeyOutputColor), noColor, out))

	logging.Logger().Debug("command start", "command", cmd.CommandPath(), "config", store.Path(), "format", format)
	return nil
}

// newClient builds an SDK client. Flags win over the config file, which wins over the environment.
func newClient() *api.Client {
	creds := store.Credentials()
	if server != "" {
		creds.BaseURL = server
	}
	if token != "" {
		creds.APIKey = token
	}
	return api.NewClient(api.Config{
		BaseURL:   creds.BaseURL,
		APIKey:    creds.APIKey,
		UserAgent: version.Get().UserAgent("topmolt-cli"),
		Logger:    logging.Logger(),
	})
}

// requestContext bounds a command's API calls by --timeout, or server.timeout when the flag is absent
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d := store.Timeout()
	if cmd.Flags().Changed("timeout") {
		d = time.Duration(timeout) * time.Second
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func getBinaryName() string {
	name := filepath.Base(os.Args[0])
	if name == "" || strings.HasSuffix(name, ".test") {
		return "topmolt"
	}
	return strings.TrimSuffix(name, ".exe")
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
