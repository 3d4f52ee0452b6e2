package runner

import (
	"path"
	"path/filepath"
	"strings"
)

// matchGlob reports whether a slash-separated relative path matches pattern.
// A "**" segment matches any number of path segments, including none. A
// pattern without a slash also matches the path's last segment, so "*.md"
// matches files at any depth.
func matchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")

	if !strings.Contains(pattern, "/") && pattern != "**" {
		matched, err := path.Match(pattern, path.Base(relPath))
		if err == nil && matched {
			return true
		}
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(segments); skip++ {
				if matchSegments(rest, segments[skip:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}

		matched, err := path.Match(pattern[0], segments[0])
		if err != nil || !matched {
			return false
		}

		pattern = pattern[1:]
		segments = segments[1:]
	}

	return len(segments) == 0
}

// matchAny reports whether relPath matches at least one pattern.
func matchAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}
