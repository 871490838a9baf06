package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// discoverMatrix returns the matrix file under dir matching the first pattern that
// has any match, or "" when none do. Among matches of one pattern the shallowest
// path wins, then the lexically smallest.
func discoverMatrix(dir string, patterns []string) (string, error) {
	fsys := os.DirFS(dir)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return "", fmt.Errorf("invalid matrix pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return "", fmt.Errorf("matching %q in %s: %w", pattern, dir, err)
		}
		if len(matches) == 0 {
			continue
		}
		sort.Slice(matches, func(i, j int) bool {
			di, dj := strings.Count(matches[i], "/"), strings.Count(matches[j], "/")
			if di != dj {
				return di < dj
			}
			return matches[i] < matches[j]
		})
		return filepath.Join(dir, filepath.FromSlash(matches[0])), nil
	}
	return "", nil
}
