package storage

import (
	"encoding/json"
	"fmt"
	"io"
)

// ExportPagesJSON streams every stored page to w as newline-delimited JSON,
// for operational inspection (original_source supplement — export,
// original_source/src/storage/export.rs, wired into the reserved `stats`
// subcommand per SPEC_FULL.md §4).
func (r *Repository) ExportPagesJSON(w io.Writer) (int, error) {
	rows, err := r.db.Query("SELECT " + pageColumns + " FROM pages ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("storage: export query: %w", err)
	}
	defer rows.Close()

	enc := json.NewEncoder(w)
	count := 0
	for rows.Next() {
		p, err := scanPageRow(rows)
		if err != nil {
			return count, fmt.Errorf("storage: export scan: %w", err)
		}
		if err := enc.Encode(p); err != nil {
			return count, fmt.Errorf("storage: export encode: %w", err)
		}
		count++
	}
	return count, rows.Err()
}
