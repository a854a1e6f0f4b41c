package docupload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// AllowedExtensions are the document types the service knows how to parse.  Compared
// case-insensitively.
var AllowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".html": true,
	".htm":  true,
}

// SupportedExtensions lists AllowedExtensions in sorted order, for messages.
func SupportedExtensions() []string {
	exts := maps.Keys(AllowedExtensions)
	sort.Strings(exts)
	return exts
}

// IsDocument reports whether name has an allowed extension.
func IsDocument(name string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ListDocuments returns the absolute paths of the regular files directly inside dir that have an
// allowed extension, sorted by name.  Subdirectories are not descended into.
func ListDocuments(dir string) ([]string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("docupload: documents directory not found: %s: %w", dir, err)
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("docupload: documents path is not a directory: %s", dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("docupload: couldn't resolve %s: %w", dir, err)
	}

	// os.ReadDir sorts by filename already
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("docupload: couldn't read directory %s: %w", abs, err)
	}

	files := []string{}
	for _, entry := range entries {
		if !IsDocument(entry.Name()) {
			continue
		}

		path := filepath.Join(abs, entry.Name())
		if entry.Type()&os.ModeSymlink != 0 {
			// follow links, but only to regular files
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}
