// Package discovery finds dataset files below a root directory using
// doublestar glob patterns.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are the globs searched when none are given.
var DefaultPatterns = []string{"**/*.csv"}

// File is a discovered dataset file
type File struct {
	Path    string // absolute or root-joined path
	RelPath string // path relative to the discovery root, slash separated
	Size    int64
}

// FileDiscovery finds dataset files below a root directory
type FileDiscovery struct {
	rootPath       string
	followSymlinks bool
	exclude        []string
}

// NewFileDiscovery creates a new FileDiscovery. Exclude patterns are doublestar
// globs matched against the slash-separated relative path.
func NewFileDiscovery(rootPath string, followSymlinks bool, exclude []string) *FileDiscovery {
	return &FileDiscovery{
		rootPath:       rootPath,
		followSymlinks: followSymlinks,
		exclude:        exclude,
	}
}

// DiscoverFiles finds files matching any of the patterns. Results are
// deduplicated and sorted by relative path. No patterns means DefaultPatterns.
func (fd *FileDiscovery) DiscoverFiles(patterns []string) ([]File, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	info, err := os.Stat(fd.rootPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", fd.rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", fd.rootPath)
	}

	seen := make(map[string]bool)
	var files []File

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}

		matches, err := doublestar.Glob(os.DirFS(fd.rootPath), pattern)
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] || fd.excluded(match) {
				continue
			}
			f, ok := fd.processMatch(match)
			if !ok {
				continue
			}
			seen[match] = true
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

func (fd *FileDiscovery) excluded(relPath string) bool {
	for _, pattern := range fd.exclude {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// processMatch converts a glob match into a File, returning false if the match should be skipped.
func (fd *FileDiscovery) processMatch(match string) (File, bool) {
	fullPath := filepath.Join(fd.rootPath, filepath.FromSlash(match))

	info, err := os.Lstat(fullPath)
	if err != nil {
		return File{}, false
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !fd.followSymlinks {
			return File{}, false
		}
		info, err = os.Stat(fullPath)
		if err != nil {
			return File{}, false
		}
	}

	if info.IsDir() {
		return File{}, false
	}

	return File{
		Path:    fullPath,
		RelPath: match,
		Size:    info.Size(),
	}, true
}
