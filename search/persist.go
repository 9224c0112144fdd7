package search

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// indexFileName is the single file written under the configured index
// path, shared by the index and search commands. A true segment-merge
// format is out of scope for a from-scratch index with no backing
// library, so the directory holds one gob-encoded snapshot instead.
const indexFileName = "index.gob"

// persistedIndex is the on-disk representation: the raw documents only.
// Postings are rebuilt by re-tokenizing on Load, keeping the file small.
type persistedIndex struct {
	Docs []IndexedDocument
}

// Save writes idx's documents to dir/indexFileName, creating dir if needed.
func (idx *Index) Save(dir string) error {
	idx.mu.RLock()
	docs := make([]IndexedDocument, 0, len(idx.docs))
	for _, sd := range idx.docs {
		docs = append(docs, sd.doc)
	}
	idx.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("search: failed to create index dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, indexFileName))
	if err != nil {
		return fmt.Errorf("search: failed to create index file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(persistedIndex{Docs: docs}); err != nil {
		return fmt.Errorf("search: failed to encode index: %w", err)
	}
	return nil
}

// Load rebuilds an Index from dir/indexFileName.
func Load(dir string) (*Index, error) {
	f, err := os.Open(filepath.Join(dir, indexFileName))
	if err != nil {
		return nil, fmt.Errorf("search: failed to open index file: %w", err)
	}
	defer f.Close()

	var p persistedIndex
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("search: failed to decode index: %w", err)
	}

	idx := NewIndex()
	for _, doc := range p.Docs {
		idx.AddDocument(doc)
	}
	idx.Commit()
	return idx, nil
}
