package sqlite

import (
	"database/sql"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ghdocs"
)

// entryColumns lists the columns scanned by scanEntry, in order.
const entryColumns = "id, collection, filename, title, file_path, source_url, last_updated, content"

// hashContent computes xxHash of content and returns hex string.
// Entries without content hash to the empty string.
func hashContent(e ghdocs.Entry) string {
	content, ok := e.Content()
	if !ok {
		return ""
	}
	var b [8]byte
	h := xxhash.Sum64String(content)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// nullContent returns the content column value for e.
func nullContent(e ghdocs.Entry, includeContent bool) sql.NullString {
	content, ok := e.Content()
	if !includeContent || !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: content, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one row selected with entryColumns. Rows that do not form
// a valid record are reported as EMALFORMED.
func scanEntry(row scanner) (ghdocs.Entry, error) {
	var r ghdocs.Record
	var content sql.NullString
	if err := row.Scan(&r.ID, &r.Collection, &r.Filename, &r.Title, &r.FilePath, &r.SourceURL, &r.LastUpdated, &content); err != nil {
		return ghdocs.Entry{}, err
	}
	if content.Valid {
		r.Content = &content.String
	}
	return ghdocs.EntryFromRecord(r)
}
