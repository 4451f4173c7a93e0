package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/config"
	"github.com/topmolt/cli/src/client/logging"
	"github.com/topmolt/cli/src/common/version"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save an API key",
	Long: `Save an API key to the config file and check it against the service.
Without --token the key is read from the terminal without echo, or from stdin when piped.

Examples:
  ` + getBinaryName() + ` login
  ` + getBinaryName() + ` login --token tm_abc123...
  echo "$TOPMOLT_API_KEY" | ` + getBinaryName() + ` login`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin(cmd)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if store.GetString(config.KeyServerToken) == "" {
			printer.Println("No saved API key found")
			return nil
		}
		if err := store.ClearAPIKey(); err != nil {
			return fmt.Errorf("failed to remove API key: %w", err)
		}
		printer.Println("API key removed from " + store.Path())
		return nil
	},
}

func runLogin(cmd *cobra.Command) error {
	key := strings.TrimSpace(token)
	if key == "" {
		var err error
		if key, err = promptKey(cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if server != "" {
		if err := store.SetBaseURL(server); err != nil {
			return err
		}
	}
	if err := store.SetAPIKey(key); err != nil {
		return err
	}
	printer.Println("API key saved to " + store.Path())

	client := api.NewClient(api.Config{
		BaseURL:   store.Credentials().BaseURL,
		APIKey:    key,
		UserAgent: version.Get().UserAgent("topmolt-cli"),
		Logger:    logging.Logger(),
	})

	ctx, cancel := requestContext(cmd)
	defer cancel()

	op, err := client.GetOperator(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not verify API key: %v\n", err)
		return nil
	}
	printer.Success(fmt.Sprintf("Logged in as @%s", op.Handle))
	return nil
}

// promptKey reads a key without echo from a terminal, or one line from a pipe
func promptKey(in io.Reader, prompt io.Writer) (string, error) {
	fmt.Fprint(prompt, "Enter API key: ")

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
