// Package discovery finds the Python sources `genny gen --dir` documents.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// DefaultPattern selects every Python file under the root.
const DefaultPattern = "**/*.py"

// DefaultIgnore skips virtualenvs and bytecode caches.
var DefaultIgnore = []string{
	"venv/**",
	".venv/**",
	"**/__pycache__/**",
	"build/**",
	"dist/**",
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery handles file discovery with glob patterns and ignore rules.
type FileDiscovery struct {
	fs             afero.Fs
	rootDir        string
	patterns       []compiledPattern
	ignorePatterns []compiledPattern
}

// New creates a file discovery instance. Patterns are matched against
// slash-separated paths relative to rootDir.
func New(fs afero.Fs, rootDir string, patterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		fs:      fs,
		rootDir: rootDir,
	}

	var err error
	if fd.patterns, err = compile(patterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compile(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

func compile(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// Discover walks the directory tree and returns matching files, sorted.
// Hidden directories (.git, .genny, ...) are never entered.
func (fd *FileDiscovery) Discover() ([]string, error) {
	files := []string{}

	err := afero.Walk(fd.fs, fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != fd.rootDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for glob matching
		relPath = filepath.ToSlash(relPath)

		if fd.shouldIgnore(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	return fd.matchesAnyPattern(relPath, fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A "**/" prefix also matches files directly under the root, so
	// "**/*.py" covers both "app.py" and "pkg/app.py".
	for _, cp := range patterns {
		if !strings.HasPrefix(cp.pattern, "**/") {
			continue
		}
		trimmed := strings.TrimPrefix(cp.pattern, "**/")
		if simplified, err := glob.Compile(trimmed, '/'); err == nil && simplified.Match(path) {
			return true
		}
	}

	return false
}
