// Package walker discovers page sources under the site's source directory.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PagePattern selects markdown page sources.
const PagePattern = "**/*.md"

// File is one discovered source file.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash-separated path relative to the root directory.
}

// Config controls the behaviour of Walk.
type Config struct {
	RootDir string   // Root directory to walk.
	Include []string // Glob patterns; only matching files are returned.
	Exclude []string // Glob patterns; matching files are dropped.
}

// Walk returns every regular file under cfg.RootDir that passes the
// include/exclude filters and the root .gitignore, sorted by RelPath.
func Walk(cfg Config) ([]File, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	gitignorePatterns := loadGitignore(filepath.Join(root, ".gitignore"))

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if matchesGitignore(relPath, gitignorePatterns) {
			return nil
		}
		if !MatchesInclude(relPath, cfg.Include) || MatchesExclude(relPath, cfg.Exclude) {
			return nil
		}

		files = append(files, File{Path: path, RelPath: relPath})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// loadGitignore reads a .gitignore file and returns its non-empty,
// non-comment lines as patterns.
func loadGitignore(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// matchesGitignore checks if a relative path matches any gitignore pattern.
// Patterns without a slash match any path component.
func matchesGitignore(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(pattern, "/")
		if !strings.Contains(pattern, "/") {
			for _, part := range strings.Split(relPath, "/") {
				if matched, _ := filepath.Match(pattern, part); matched {
					return true
				}
			}
			continue
		}
		if matched, _ := filepath.Match(strings.TrimPrefix(pattern, "/"), relPath); matched {
			return true
		}
	}
	return false
}
