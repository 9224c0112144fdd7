/*
Package cmd wires the anvesha-crawler CLI: a package-level root command,
subcommands registered from init(), and a PersistentPreRun that loads
configuration before any subcommand body runs.

	func main() {
		cmd.Execute()
	}
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreyas-bk24/anvesha-crawler/config"
	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

var configPath string

var rootCommand = &cobra.Command{
	Use:   "anvesha",
	Short: "anvesha-crawler: crawl, rank, and search the web",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(os.Stderr)
		if err := config.Load(configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
}

// Execute runs the command specified by the command line, exiting the
// process with a nonzero status on any fatal error.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}
