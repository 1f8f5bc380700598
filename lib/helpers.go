package svn

// Small helper functions.

import (
	"sort"
	"strings"
)

// ParentPath returns the path with its final component removed, and false
// if the path has no parent (no '/' in it).
func ParentPath(path string) (string, bool) {
	slash := strings.LastIndexByte(path, '/')
	if slash == -1 {
		return "", false
	}
	return path[:slash], true
}

// BaseName returns the final component of a path, or the whole path if
// it contains no '/'.
func BaseName(path string) string {
	return path[strings.LastIndexByte(path, '/')+1:]
}

// ReplacePathPrefixes returns the given path with any replacements applied,
// trying the longest prefixes first so the most specific rule wins.
func ReplacePathPrefixes(path string, replacements map[string]string) string {
	for _, prefix := range longestFirst(replacements) {
		if len(prefix) > 0 {
			if result := ReplacePathPrefix(path, prefix, replacements[prefix]); result != path {
				return result
			}
		}
	}

	return path
}

func ReplacePathPrefix(path string, prefix, replacement string) string {
	// Remove trailing slashes from the right side.
	trimmedPrefix := strings.TrimRight(prefix, "/")

	if strings.HasPrefix(path, trimmedPrefix) {
		// Makes sure that it's a path-component match, so we don't match
		// "Model/" and "Models/".
		if len(path) == len(trimmedPrefix) || path[len(trimmedPrefix)] == '/' {
			path = strings.Trim(replacement+path[len(trimmedPrefix):], "/")
		}
	}

	return path
}

// MatchPathPrefix returns true if the given path begins with the same path
// *components* as prefix, e.g. "foo/bar" matches "foo" and "foo/bar" but
// "foobar" does not match "foo". Always returns false if prefix is "/" or
// empty.
func MatchPathPrefix(path, prefix string) bool {
	path = strings.Trim(path, "/")
	prefix = strings.Trim(prefix, "/")

	if len(prefix) == 0 || len(path) < len(prefix) {
		return false
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if len(path) == len(prefix) {
		return true
	}
	return path[len(prefix)] == '/'
}

// longestFirst returns the keys of a table sorted by length with the longest
// first, ties broken alphabetically so the order is stable between runs.
func longestFirst(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
