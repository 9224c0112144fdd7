package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shreyas-bk24/anvesha-crawler/algorithms"
	"github.com/shreyas-bk24/anvesha-crawler/config"
	"github.com/shreyas-bk24/anvesha-crawler/storage"
)

var tfidfTop int

var tfidfCommand = &cobra.Command{
	Use:   "calculate-tf-idf",
	Short: "compute corpus-wide TF-IDF magnitudes and persist them",
	Run: func(cmd *cobra.Command, args []string) {
		runTFIDF()
	},
}

func init() {
	tfidfCommand.Flags().IntVar(&tfidfTop, "top", 10, "number of highest-magnitude documents to print")
	rootCommand.AddCommand(tfidfCommand)
}

func runTFIDF() {
	repo, err := storage.NewRepository(config.Config.Storage.DatabaseURL, config.Config.Storage.EnableCaching)
	if err != nil {
		fatalf("calculate-tf-idf: failed to open repository: %v", err)
	}
	defer repo.Close()

	pages, err := repo.GetPages(storage.PageFilter{})
	if err != nil {
		fatalf("calculate-tf-idf: failed to load pages: %v", err)
	}

	docs := make([]algorithms.Document, 0, len(pages))
	for _, p := range pages {
		docs = append(docs, algorithms.Document{ID: p.URLHash, Content: p.Content})
	}
	corpus := algorithms.BuildCorpus(docs)

	type scored struct {
		url       string
		urlHash   string
		magnitude float64
	}
	var results []scored
	for _, p := range pages {
		mag := corpus.Magnitude(p.URLHash)
		if err := repo.UpdateTFIDFScore(p.URLHash, mag); err != nil {
			fatalf("calculate-tf-idf: failed to persist score for %s: %v", p.URL, err)
		}
		results = append(results, scored{url: p.URL, urlHash: p.URLHash, magnitude: mag})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].magnitude > results[j].magnitude })

	fmt.Printf("tf-idf computed over %d documents\n", len(results))
	limit := tfidfTop
	if limit > len(results) {
		limit = len(results)
	}
	for i, r := range results[:limit] {
		fmt.Printf("%3d. %-60s %.6f\n", i+1, r.url, r.magnitude)
	}
}
