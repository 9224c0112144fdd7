package cmd

import (
	"github.com/spf13/cobra"
)

// apiCommand is reserved for a future HTTP query API; that server is out
// of scope for this release, so the command only reports as much.
var apiCommand = &cobra.Command{
	Use:   "api",
	Short: "(reserved) start an HTTP query API — not implemented",
	Run: func(cmd *cobra.Command, args []string) {
		fatalf("api: not implemented in this release")
	},
}

func init() {
	apiCommand.Flags().Int("port", 8080, "(reserved, unused)")
	rootCommand.AddCommand(apiCommand)
}
