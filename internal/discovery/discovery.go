// Package discovery finds the three artifact kinds bashrs lints (shell
// scripts, Makefiles, Dockerfiles) from a mix of file/directory/glob
// inputs, adapted from the teacher's internal/discovery (which only
// ever looked for Dockerfiles) to classify what it finds by Kind so the
// caller can route each file to the right lint entry point
// (internal/lint.LintShell/LintMakefile/LintDockerfile).
package discovery

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Kind classifies a discovered file by which lint pipeline should run
// over it.
type Kind int

const (
	KindShell Kind = iota
	KindMakefile
	KindDockerfile
)

func (k Kind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindMakefile:
		return "makefile"
	case KindDockerfile:
		return "dockerfile"
	default:
		return "unknown"
	}
}

// DiscoveredFile is one artifact found during discovery.
type DiscoveredFile struct {
	// Path preserves the original input for explicit file arguments
	// (which may be relative) and is absolute for glob/directory
	// results, mirroring the teacher's DiscoveredFile.
	Path string
	Kind Kind
	// ConfigRoot is the directory .bashrs.* config discovery should
	// start from for this file.
	ConfigRoot string
}

// Options configures discovery.
type Options struct {
	// Patterns are the glob patterns to match (default: DefaultPatterns()).
	Patterns []string
	// ExcludePatterns are glob patterns excluded from results.
	ExcludePatterns []string
}

// DefaultPatterns covers the three artifact kinds spec §1 names:
// POSIX/bash scripts, Makefiles, and Dockerfiles/Containerfiles.
func DefaultPatterns() []string {
	return []string{
		"*.sh", "*.bash",
		"Makefile", "makefile", "Makefile.*", "*.mk",
		"Dockerfile", "Dockerfile.*", "*.Dockerfile",
		"Containerfile", "Containerfile.*", "*.Containerfile",
	}
}

// ClassifyKind maps a file name to the Kind discovery/lint routes it
// through. Unmatched names (e.g. a config file glob-matched by
// accident) return KindShell, since shebang-based detection is the
// fallback internal/lint.LintShell already performs.
func ClassifyKind(name string) Kind {
	base := filepath.Base(name)
	switch {
	case base == "Makefile" || base == "makefile" || strings.HasPrefix(base, "Makefile.") || strings.HasSuffix(base, ".mk"):
		return KindMakefile
	case base == "Dockerfile" || base == "Containerfile" ||
		strings.HasPrefix(base, "Dockerfile.") || strings.HasPrefix(base, "Containerfile.") ||
		strings.HasSuffix(base, ".Dockerfile") || strings.HasSuffix(base, ".Containerfile"):
		return KindDockerfile
	default:
		return KindShell
	}
}

// Discover finds artifacts matching inputs: each input may be a literal
// file, a directory (searched recursively with Patterns), or a glob.
// Results are deduplicated by absolute path and sorted for determinism.
func Discover(inputs []string, opts Options) ([]DiscoveredFile, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}
	seen := make(map[string]bool)
	var results []DiscoveredFile

	for _, input := range inputs {
		discovered, err := discoverInput(input, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}

	slices.SortFunc(results, func(a, b DiscoveredFile) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return results, nil
}

func discoverInput(input string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	if containsGlobChars(input) {
		return discoverGlob(input, opts, seen)
	}
	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return discoverDirectory(input, opts, seen)
		}
		return discoverFile(input, opts, seen)
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	return discoverGlob(input, opts, seen)
}

func containsGlobChars(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}

func discoverFile(path string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
		return nil, nil
	}
	seen[absPath] = true
	return []DiscoveredFile{{
		Path:       path,
		Kind:       ClassifyKind(path),
		ConfigRoot: filepath.Dir(absPath),
	}}, nil
}

func discoverDirectory(dir string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	var results []DiscoveredFile
	var patterns []string
	for _, pattern := range opts.Patterns {
		patterns = append(patterns,
			filepath.Join(absDir, "**", pattern),
			filepath.Join(absDir, pattern),
		)
	}
	for _, pattern := range patterns {
		discovered, err := globMatches(pattern, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}
	return results, nil
}

func globMatches(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	var results []DiscoveredFile
	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}
		if isExcluded(absPath, opts.ExcludePatterns) || seen[absPath] {
			continue
		}
		seen[absPath] = true
		results = append(results, DiscoveredFile{
			Path:       absPath,
			Kind:       ClassifyKind(absPath),
			ConfigRoot: filepath.Dir(absPath),
		})
	}
	return results, nil
}

func discoverGlob(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	return globMatches(pattern, opts, seen)
}

// isExcluded matches absPath against excludePatterns, treating a
// pattern with no leading "/" or "**/" as matching at any depth (so
// "vendor/*" behaves like "**/vendor/*").
func isExcluded(absPath string, excludePatterns []string) bool {
	pathSlash := filepath.ToSlash(absPath)
	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)
		if !strings.HasPrefix(pattern, "/") && !strings.HasPrefix(pattern, "**/") {
			pattern = "**/" + pattern
		}
		if matched, err := doublestar.Match(pattern, pathSlash); err == nil && matched {
			return true
		}
	}
	return false
}
