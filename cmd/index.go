package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shreyas-bk24/anvesha-crawler/config"
	"github.com/shreyas-bk24/anvesha-crawler/search"
	"github.com/shreyas-bk24/anvesha-crawler/storage"
)

var indexPath string

var indexCommand = &cobra.Command{
	Use:   "index",
	Short: "rebuild the inverted index from the repository",
	Run: func(cmd *cobra.Command, args []string) {
		runIndex()
	},
}

func init() {
	indexCommand.Flags().StringVar(&indexPath, "index-path", "", "directory holding the inverted index")
	rootCommand.AddCommand(indexCommand)
}

func resolveIndexPath() string {
	if indexPath != "" {
		return indexPath
	}
	return config.Config.Storage.StoragePath
}

func runIndex() {
	repo, err := storage.NewRepository(config.Config.Storage.DatabaseURL, config.Config.Storage.EnableCaching)
	if err != nil {
		fatalf("index: failed to open repository: %v", err)
	}
	defer repo.Close()

	pages, err := repo.GetPages(storage.PageFilter{})
	if err != nil {
		fatalf("index: failed to load pages: %v", err)
	}

	idx := search.NewIndex()
	for _, p := range pages {
		idx.AddDocument(toIndexedDocument(p))
	}
	idx.Commit()

	if err := idx.Save(resolveIndexPath()); err != nil {
		fatalf("index: failed to save index: %v", err)
	}

	fmt.Printf("index rebuilt: documents=%d path=%s\n", idx.DocCount(), resolveIndexPath())
}

func toIndexedDocument(p storage.StoredPage) search.IndexedDocument {
	var title, description string
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}

	var pagerank, tfidf float64
	if p.PageRank != nil {
		pagerank = *p.PageRank
	}
	if p.TFIDFScore != nil {
		tfidf = *p.TFIDFScore
	}

	lang := search.Language(p.Language)
	if lang == "" {
		lang = search.DetectLanguage(p.Content)
	}

	return search.IndexedDocument{
		ID:          p.ID,
		URL:         p.URL,
		Domain:      p.Domain,
		Language:    lang,
		Title:       title,
		Description: description,
		Content:     p.Content,
		Quality:     p.ContentQualityScore,
		PageRank:    pagerank,
		TFIDF:       tfidf,
	}
}
