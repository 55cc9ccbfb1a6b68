package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/ghdocs"
	"github.com/google/uuid"
)

// WriteFileAtomic writes data to a temporary file next to path, syncs it and
// renames it over path. Parent directories are created as needed. On failure
// the previous file, if any, is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot create directory %s: %v", dir, err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := writeSynced(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot write %s: %v", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return ghdocs.Errorf(ghdocs.ESTORAGE, "cannot replace %s: %v", path, err)
	}
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadContent reads a markdown file. A missing file reports ok == false
// without an error.
func ReadContent(path string) (content string, ok bool, err error) {
	if path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("read content %s: %w", path, err)
	}
	return string(data), true, nil
}

// AttachContent returns a copy of entries where every entry lacking content
// has its file content attached, when that file exists. The input slice is
// not modified.
func AttachContent(entries []ghdocs.Entry) ([]ghdocs.Entry, error) {
	out := make([]ghdocs.Entry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.HasContent() {
			continue
		}
		content, ok, err := ReadContent(e.FilePath)
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = e.WithContent(content)
		}
	}
	return out, nil
}
