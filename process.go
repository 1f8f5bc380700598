package main

import (
	svn "github.com/kfsone/svn-portfolio/lib"
)

// rewritePath applies the 'replace' rules and then the 'filter' rules to a
// path from either the listing or the log, so that both agree on where
// everything lives.
func (r *Rules) rewritePath(path string) (string, bool) {
	// Apply 'replace'.
	if replaced := svn.ReplacePathPrefixes(path, r.Replace); replaced != path {
		Log("replace %s -> %s", path, replaced)
		path = replaced
	}

	// A replacement that collapses to the root leaves nothing to keep.
	if path == "" {
		return "", false
	}

	// Apply 'filter'.
	if filter, filtered := matchFilter(path, r.Filter); filtered {
		Log("filter:%s eliding %s", filter, path)
		return "", false
	}

	return path, true
}

// matchFilter returns the first filter that path falls under.
func matchFilter(path string, filters []string) (string, bool) {
	for _, filter := range filters {
		if svn.MatchPathPrefix(path, filter) {
			return filter, true
		}
	}
	return "", false
}
