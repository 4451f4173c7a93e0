// Command topmolt is the CLI for the Topmolt agent leaderboard
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/topmolt/cli/src/client/cmd"
	"github.com/topmolt/cli/src/client/output"
)

func main() {
	if err := InitCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	msg := "Error: " + err.Error()
	if cmd.ColorEnabled() {
		msg = lipgloss.NewStyle().Foreground(output.Red).Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
