// Package yaml loads ghdocs configuration files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/ghdocs"
	"gopkg.in/yaml.v3"
)

// DefaultBranch is used for sources that do not name a branch.
const DefaultBranch = "main"

// LoadConfig reads the configuration file at path on top of
// ghdocs.DefaultConfig(baseDir). A missing file yields the defaults.
//
// A sources list in the file replaces the default sources. Fields left out
// of a source that shares its name with a default source are taken from that
// default; other sources store their files in baseDir/<name>.
func LoadConfig(path, baseDir string) (ghdocs.Config, error) {
	baseDir, err := ExpandHome(baseDir)
	if err != nil {
		return ghdocs.Config{}, err
	}
	defaults := ghdocs.DefaultConfig(baseDir)

	data, err := readFile(path)
	if err != nil {
		return ghdocs.Config{}, err
	}
	return ParseConfig(data, baseDir, defaults)
}

// ParseConfig decodes data over defaults, fills missing source fields and
// validates the result. Unknown keys are rejected.
func ParseConfig(data []byte, baseDir string, defaults ghdocs.Config) (ghdocs.Config, error) {
	cfg := defaults
	cfg.Sources = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ghdocs.Config{}, ghdocs.Errorf(ghdocs.EINVALID, "invalid configuration: %v", err)
	}

	if cfg.Sources == nil {
		cfg.Sources = defaults.Sources
	}
	for i, src := range cfg.Sources {
		src, err := completeSource(src, baseDir, defaults)
		if err != nil {
			return ghdocs.Config{}, err
		}
		cfg.Sources[i] = src
	}

	var err error
	if cfg.Database, err = ExpandHome(cfg.Database); err != nil {
		return ghdocs.Config{}, err
	}
	cfg.Backend = strings.ToLower(cfg.Backend)

	if err := cfg.Validate(); err != nil {
		return ghdocs.Config{}, err
	}
	return cfg, nil
}

func completeSource(src ghdocs.Source, baseDir string, defaults ghdocs.Config) (ghdocs.Source, error) {
	if def, err := defaults.Source(src.Name); err == nil {
		if src.StoragePath == "" {
			src.StoragePath = def.StoragePath
			if src.IndexFile == "" {
				src.IndexFile = def.IndexFile
			}
		}
		if src.Repo == "" {
			src.Repo = def.Repo
		}
		if src.Branch == "" {
			src.Branch = def.Branch
		}
		if src.PathPrefix == "" && src.Repo == def.Repo {
			src.PathPrefix = def.PathPrefix
		}
		if len(src.Collections) == 0 {
			src.Collections = def.Collections
		}
	}

	var err error
	if src.StoragePath == "" && src.Name != "" {
		src.StoragePath = filepath.Join(baseDir, src.Name)
	}
	if src.StoragePath, err = ExpandHome(src.StoragePath); err != nil {
		return ghdocs.Source{}, err
	}
	if src.IndexFile == "" && src.StoragePath != "" {
		src.IndexFile = filepath.Join(src.StoragePath, "index.json")
	}
	if src.IndexFile, err = ExpandHome(src.IndexFile); err != nil {
		return ghdocs.Source{}, err
	}
	if src.Branch == "" {
		src.Branch = DefaultBranch
	}
	if src.PathPrefix != "" && !strings.HasSuffix(src.PathPrefix, "/") {
		src.PathPrefix += "/"
	}
	return src, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ghdocs.Errorf(ghdocs.EINVALID, "cannot expand %s: %v", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, ghdocs.Errorf(ghdocs.EINVALID, "cannot read configuration %s: %v", path, err)
	}
	return data, nil
}
