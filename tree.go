package main

import (
	"fmt"
	"strings"

	svn "github.com/kfsone/svn-portfolio/lib"
)

// renderTree draws every top-level group and everything below it, one
// entry per line, indented by depth.
//
//	Assignment0/  r1474  lstrait2  Search implementation
//	  CS440_MP1/  r1474  lstrait2  Search implementation
//	    search.py  r1474  lstrait2  [code 5120b]  Search implementation
func renderTree(repos *svn.Repository) string {
	var sb strings.Builder
	for _, group := range repos.TopLevelGroups() {
		repos.Walk(group, func(e svn.Entry, depth int) bool {
			sb.WriteString(treeLine(repos, e, depth))
			sb.WriteByte('\n')
			return true
		})
	}
	return sb.String()
}

func treeLine(repos *svn.Repository, e svn.Entry, depth int) string {
	node := e.Meta()
	line := fmt.Sprintf("%s%s  r%d  %s", strings.Repeat("  ", depth), e.BaseName(), node.Revision, node.Author)

	if file, ok := e.(*svn.File); ok {
		line += fmt.Sprintf("  [%s %db]", file.Classify(), file.Size)
	}

	summary, err := repos.Summary(e)
	if err != nil {
		summary = "-"
	}
	// Only the first line of a commit message fits.
	if nl := strings.IndexAny(summary, "\r\n"); nl != -1 {
		summary = summary[:nl]
	}

	return line + "  " + summary
}
