// Package corpus locates and inspects the raw text files a vocabulary is
// trained on.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesWithExt returns the regular files directly inside dir whose
// extension equals ext. The extension is given without its leading dot;
// one is tolerated. Subdirectories are not descended into. The result is
// sorted so training input order does not depend on the filesystem.
func FindFilesWithExt(dir, ext string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrPathEmpty
	}
	ext = strings.TrimPrefix(ext, ".")

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotExist, dir)
		}
		return nil, fmt.Errorf("failed to access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !hasExt(entry.Name(), ext) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		// Symlinks are followed; dangling ones are skipped
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}

	sort.Strings(files)
	return files, nil
}

// hasExt reports whether name ends in "."+ext. Dotfiles such as ".txt" have
// no extension.
func hasExt(name, ext string) bool {
	got := filepath.Ext(name)
	if got == "" || got == name {
		return false
	}
	return got[1:] == ext
}
