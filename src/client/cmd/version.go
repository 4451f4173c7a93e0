package cmd

import (
	"github.com/spf13/cobra"

	"github.com/topmolt/cli/src/client/output"
	"github.com/topmolt/cli/src/common/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(info)
		case output.Plain:
			printer.Println(info.Version)
			return nil
		}

		printer.Printf("%s %s\n\n", getBinaryName(), info.String())
		printer.Println(info.Full())
		printer.Printf("Server:     %s\n", newClient().BaseURL())
		return nil
	},
}
