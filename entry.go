package ghdocs

import (
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout used for last_updated in index files.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// recordTimeLayout extends TimeLayout with fractional seconds, which are
// omitted when zero.
const recordTimeLayout = "2006-01-02T15:04:05.999999999-07:00"

// Entry represents one indexed documentation file.
//
// Entries are values. Attaching or dropping content returns a new Entry, so
// the same entry referenced from several slices never changes underneath
// its readers.
type Entry struct {
	Collection  string
	Filename    string
	Title       string
	FilePath    string
	SourceURL   string
	LastUpdated time.Time

	content    string
	hasContent bool

	// stamp is last_updated as read from an index, written back verbatim
	// while LastUpdated still holds the same instant.
	stamp string
}

// ID returns the entry identifier in "collection:filename" form.
func (e Entry) ID() string {
	return e.Collection + ":" + e.Filename
}

// Slug returns the filename without its markdown extension.
func (e Entry) Slug() string {
	return strings.TrimSuffix(e.Filename, ".md")
}

// Content returns the markdown body and whether it has been loaded.
func (e Entry) Content() (string, bool) {
	return e.content, e.hasContent
}

// HasContent reports whether the markdown body has been loaded.
func (e Entry) HasContent() bool {
	return e.hasContent
}

// WithContent returns a copy of the entry with content attached.
func (e Entry) WithContent(content string) Entry {
	e.content = content
	e.hasContent = true
	return e
}

// WithoutContent returns a copy of the entry with content dropped.
func (e Entry) WithoutContent() Entry {
	e.content = ""
	e.hasContent = false
	return e
}

// TitleMatches reports whether the title contains query, ignoring case.
func (e Entry) TitleMatches(query string) bool {
	return strings.Contains(strings.ToLower(e.Title), strings.ToLower(query))
}

// ContentMatches reports whether the loaded content contains query, ignoring
// case. It is always false when content has not been loaded.
func (e Entry) ContentMatches(query string) bool {
	if !e.hasContent {
		return false
	}
	return strings.Contains(strings.ToLower(e.content), strings.ToLower(query))
}

// Validate returns an error if the entry contains invalid fields.
func (e Entry) Validate() error {
	if e.Collection == "" {
		return Errorf(EINVALID, "entry collection required")
	}
	if e.Filename == "" {
		return Errorf(EINVALID, "entry filename required")
	}
	return nil
}

// Record is the serialized form of an Entry inside an index file.
type Record struct {
	ID          string  `json:"id"`
	Collection  string  `json:"collection"`
	Filename    string  `json:"filename"`
	Title       string  `json:"title"`
	FilePath    string  `json:"file_path"`
	SourceURL   string  `json:"source_url"`
	LastUpdated string  `json:"last_updated"`
	Content     *string `json:"content,omitempty"`

	// GitHubURL is the source url key used by older index files.
	GitHubURL string `json:"github_url,omitempty"`
}

// Record converts the entry to its serialized form. Content is included only
// when includeContent is set and the entry has content loaded.
func (e Entry) Record(includeContent bool) Record {
	r := Record{
		ID:          e.ID(),
		Collection:  e.Collection,
		Filename:    e.Filename,
		Title:       e.Title,
		FilePath:    e.FilePath,
		SourceURL:   e.SourceURL,
		LastUpdated: e.lastUpdated(),
	}
	if includeContent && e.hasContent {
		content := e.content
		r.Content = &content
	}
	return r
}

func (e Entry) lastUpdated() string {
	if e.stamp != "" {
		if t, err := time.Parse(time.RFC3339Nano, e.stamp); err == nil && t.Equal(e.LastUpdated) {
			return e.stamp
		}
	}
	return e.LastUpdated.Format(recordTimeLayout)
}

// EntryFromRecord converts a serialized record back into an Entry.
// The stored id is recomputed from collection and filename and must match.
func EntryFromRecord(r Record) (Entry, error) {
	if r.Collection == "" || r.Filename == "" {
		return Entry{}, Errorf(EMALFORMED, "index record %q missing collection or filename", r.ID)
	}
	if r.LastUpdated == "" {
		return Entry{}, Errorf(EMALFORMED, "index record %q missing last_updated", r.ID)
	}

	lastUpdated, err := time.Parse(time.RFC3339Nano, r.LastUpdated)
	if err != nil {
		return Entry{}, Errorf(EMALFORMED, "index record %q has invalid last_updated %q", r.ID, r.LastUpdated)
	}

	e := Entry{
		Collection:  r.Collection,
		Filename:    r.Filename,
		Title:       r.Title,
		FilePath:    r.FilePath,
		SourceURL:   r.SourceURL,
		LastUpdated: lastUpdated,
		stamp:       r.LastUpdated,
	}
	if e.SourceURL == "" {
		e.SourceURL = r.GitHubURL
	}
	if r.ID != "" && r.ID != e.ID() {
		return Entry{}, Errorf(EMALFORMED, "index record id %q does not match %q", r.ID, e.ID())
	}
	if r.Content != nil {
		e = e.WithContent(*r.Content)
	}
	return e, nil
}

// SplitID splits an identifier into collection and filename on the first
// colon. Filenames may themselves contain colons.
func SplitID(id string) (collection, filename string, ok bool) {
	collection, filename, ok = strings.Cut(id, ":")
	if !ok || collection == "" || filename == "" {
		return "", "", false
	}
	return collection, filename, true
}
