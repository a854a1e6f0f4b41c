package wikiexport

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDocument writes contents to dir/filename, replacing any existing file of that name.
func WriteDocument(dir string, filename string, contents string) (string, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("wikiexport: cannot stat '%s': %w", dir, err)
	}

	if !stat.IsDir() {
		return "", fmt.Errorf("wikiexport: output path not a directory: '%s'", dir)
	}

	abs := filepath.Join(dir, filename)

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("wikiexport: couldn't create file %s: %w", abs, err)
	}

	if _, err = f.WriteString(contents); err != nil {
		f.Close()
		return "", fmt.Errorf("wikiexport: couldn't write to file %s: %w", abs, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("wikiexport: couldn't close file %s: %w", abs, err)
	}

	return abs, nil
}
