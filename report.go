package main

import (
	"fmt"
	"io"
	"os"

	svn "github.com/kfsone/svn-portfolio/lib"
	yml "gopkg.in/yaml.v3"
)

// ReportEntry describes one directory or file and its history.
type ReportEntry struct {
	Path     string          `yaml:"path"`
	Kind     string          `yaml:"kind"`
	Revision int             `yaml:"revision"`
	Author   string          `yaml:"author"`
	Date     string          `yaml:"date"`
	Summary  string          `yaml:"summary,omitempty"`
	Type     svn.FileType    `yaml:"type,omitempty"`
	Size     int64           `yaml:"size,omitempty"`
	History  []*svn.Revision `yaml:"history,omitempty"`
}

// ReportGroup is a top-level group and everything below it.
type ReportGroup struct {
	Group   string        `yaml:"group"`
	Entries []ReportEntry `yaml:"entries"`
}

func newReportGroup(repos *svn.Repository, group *svn.Directory) *ReportGroup {
	report := &ReportGroup{Group: group.Path}
	repos.Walk(group, func(e svn.Entry, depth int) bool {
		node := e.Meta()
		entry := ReportEntry{
			Path:     node.Path,
			Kind:     *e.Kind(),
			Revision: node.Revision,
			Author:   node.Author,
			Date:     node.Date,
			History:  node.History,
		}
		if summary, err := repos.Summary(e); err == nil {
			entry.Summary = summary
		}
		if file, ok := e.(*svn.File); ok {
			entry.Type = file.Classify()
			entry.Size = file.Size
		}
		report.Entries = append(report.Entries, entry)
		return true
	})
	return report
}

// encodeGroup appends a group to the report. Each group is encoded as an
// array of one with its own encoder, so the file reads as a single array
// of groups instead of a stream of '---' separated documents.
func encodeGroup(w io.Writer, group *ReportGroup) error {
	ymlenc := yml.NewEncoder(w)
	ymlenc.SetIndent(2)
	if err := ymlenc.Encode([]*ReportGroup{group}); err != nil {
		return err
	}
	return ymlenc.Close()
}

func writeReport(repos *svn.Repository, filename string) error {
	// Open the file for writing.
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, group := range repos.TopLevelGroups() {
		if err := encodeGroup(f, newReportGroup(repos, group)); err != nil {
			return fmt.Errorf("%s: %s: %w", filename, group.Path, err)
		}
	}

	return f.Close()
}
