// Package discovery enumerates the payload files a replay run consumes.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
)

// ListFiles returns the regular files in dir carrying the given
// extension (e.g. ".xml"), in the order the directory glob yields them.
func ListFiles(dir, ext string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", ext, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}
