package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shreyas-bk24/anvesha-crawler/config"
	"github.com/shreyas-bk24/anvesha-crawler/storage"
)

var statsExportPath string

// statsCommand prints no crawl/index statistics; with --export it dumps the
// full page store as newline-delimited JSON for offline analysis, and
// without it prints a usage hint.
var statsCommand = &cobra.Command{
	Use:   "stats",
	Short: "(reserved) --export dumps stored pages as NDJSON",
	Run: func(cmd *cobra.Command, args []string) {
		runStats()
	},
}

func init() {
	statsCommand.Flags().StringVar(&statsExportPath, "export", "", "write all stored pages as newline-delimited JSON to this path")
	rootCommand.AddCommand(statsCommand)
}

func runStats() {
	repo, err := storage.NewRepository(config.Config.Storage.DatabaseURL, config.Config.Storage.EnableCaching)
	if err != nil {
		fatalf("stats: failed to open repository: %v", err)
	}
	defer repo.Close()

	if statsExportPath == "" {
		fmt.Println("stats: pass --export <path> to dump stored pages as NDJSON")
		return
	}

	f, err := os.Create(statsExportPath)
	if err != nil {
		fatalf("stats: failed to create export file: %v", err)
	}
	defer f.Close()

	count, err := repo.ExportPagesJSON(f)
	if err != nil {
		fatalf("stats: export failed: %v", err)
	}
	fmt.Printf("exported %d pages to %s\n", count, statsExportPath)
}
