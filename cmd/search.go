package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreyas-bk24/anvesha-crawler/search"
)

var (
	searchLimit       int
	searchOffset      int
	searchDomain      string
	searchMinQuality  float64
	searchMaxQuality  float64
	searchSortKey     string
	searchSnippets    bool
	searchHighlight   bool
)

var searchCommand = &cobra.Command{
	Use:   "search <query>",
	Short: "run a ranked query against the inverted index",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSearch(args[0])
	},
}

func init() {
	searchCommand.Flags().StringVar(&indexPath, "index-path", "", "directory holding the inverted index")
	searchCommand.Flags().IntVar(&searchLimit, "limit", 10, "maximum results to return")
	searchCommand.Flags().IntVar(&searchOffset, "offset", 0, "results to skip before the first returned")
	searchCommand.Flags().StringVar(&searchDomain, "domain", "", "restrict results to this domain")
	searchCommand.Flags().Float64Var(&searchMinQuality, "min-quality", 0, "minimum content quality score")
	searchCommand.Flags().Float64Var(&searchMaxQuality, "max-quality", 1, "maximum content quality score")
	searchCommand.Flags().StringVar(&searchSortKey, "sort", "relevance", "relevance|quality|pagerank|tfidf|date")
	searchCommand.Flags().BoolVar(&searchSnippets, "snippets", false, "include snippet extraction")
	searchCommand.Flags().BoolVar(&searchHighlight, "highlight", false, "highlight query terms in snippets")
	rootCommand.AddCommand(searchCommand)
}

func runSearch(query string) {
	idx, err := search.Load(resolveIndexPath())
	if err != nil {
		fatalf("search: failed to load index: %v", err)
	}

	opts := search.QueryOptions{
		Query:     query,
		Limit:     searchLimit,
		Offset:    searchOffset,
		Sort:      search.SortKey(searchSortKey),
		Snippets:  searchSnippets,
		Highlight: searchHighlight,
	}
	if searchDomain != "" {
		opts.Filters.Domain = &searchDomain
	}
	opts.Filters.MinQuality = &searchMinQuality
	opts.Filters.MaxQuality = &searchMaxQuality

	results := search.NewQueryEngine(idx).Search(opts)

	fmt.Printf("%-6s %-50s %-8s %s\n", "RANK", "URL", "SCORE", "TITLE")
	for i, r := range results {
		fmt.Printf("%-6d %-50s %-8.3f %s\n", searchOffset+i+1, r.URL, r.Combined, r.Title)
		if r.Snippet != "" {
			fmt.Printf("       %s\n", r.Snippet)
		}
	}
}
