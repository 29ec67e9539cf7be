package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/chehxing/docx-to-excel/constants"
)

// FindDocuments returns the files under root matching pattern, sorted and
// without duplicates. "**" recurses. A pattern ending in ".docx" also
// matches the upper-case ".DOCX" spelling. Hidden files and directories
// are skipped.
func FindDocuments(root, pattern string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("input directory is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("input directory %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory %q: not a directory", root)
	}
	if pattern == "" {
		pattern = constants.DefaultPattern
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	patterns := []string{pattern}
	if ext := "." + constants.DocumentExt; strings.HasSuffix(strings.ToLower(pattern), ext) {
		upper := pattern[:len(pattern)-len(ext)] + strings.ToUpper(ext)
		if upper != pattern {
			patterns = append(patterns, upper)
		}
	}

	// Glob inside the root so its name is never read as pattern syntax.
	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var out []string
	for _, p := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(p), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		for _, rel := range matches {
			if IsHidden(rel) {
				continue
			}
			m := filepath.Join(root, filepath.FromSlash(rel))
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}
