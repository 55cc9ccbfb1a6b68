// Package fs provides file-based storage for documentation and its index.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/ghdocs"
)

// Writer writes downloaded markdown files below a source's storage path.
// Files are laid out as <baseDir>/<collection>/<name>.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the local path of a collection file.
func (w *Writer) Path(collection, name string) (string, error) {
	if collection == "" || name == "" {
		return "", ghdocs.Errorf(ghdocs.EINVALID, "collection and file name required")
	}
	if !safeSegment(name) {
		return "", ghdocs.Errorf(ghdocs.EINVALID, "invalid file name %s/%s", collection, name)
	}
	// Collections may be nested directories such as "guides/advanced".
	segments := strings.Split(collection, "/")
	for _, seg := range segments {
		if !safeSegment(seg) {
			return "", ghdocs.Errorf(ghdocs.EINVALID, "invalid collection %q", collection)
		}
	}
	return filepath.Join(append(append([]string{w.baseDir}, segments...), name)...), nil
}

func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// Write stores content for a collection file and reports whether the file
// changed. Files whose content hash matches what is already on disk are not
// rewritten.
func (w *Writer) Write(collection, name, content string) (path string, changed bool, err error) {
	path, err = w.Path(collection, name)
	if err != nil {
		return "", false, err
	}

	if existing, err := os.ReadFile(path); err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(content) {
		return path, false, nil
	}

	if err := WriteFileAtomic(path, []byte(content)); err != nil {
		return "", false, err
	}
	return path, true, nil
}
