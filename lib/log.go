package svn

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/*
log -> logentry *

logentry ->
  <logentry revision="number">
    <author>name</author>
    <date>timestamp</date>
    <paths>
      <path kind="dir|file" action="A|M|D|R">/root/path</path> *
    </paths>
    <msg>message</msg>
  </logentry>
*/

type logPath struct {
	Kind   string `xml:"kind,attr"`
	Action string `xml:"action,attr"`
	Text   string `xml:",chardata"`
}

type logEntry struct {
	Revision *string   `xml:"revision,attr"`
	Author   string    `xml:"author"`
	Date     string    `xml:"date"`
	Message  string    `xml:"msg"`
	Paths    []logPath `xml:"paths>path"`
}

// pendingRevision is a revision waiting to be attached to an entry of kind.
type pendingRevision struct {
	kind NodeKind
	rev  *Revision
}

// ParseLog reads an `svn log -v --xml` document and attaches a Revision to
// every entry in the repository that a log entry names, matching the path
// kind: directories only receive "dir" paths and files "file" paths.
// Paths the repository doesn't have (deleted, or outside the listing) are
// dropped, as are repeats of a commit an entry already has.
//
// When the log records that a path was deleted, everything at or below it
// up to that revision belongs to the deleted incarnation, and only the
// commits after it are attached. A replacement ("R") is a delete and add in
// one commit, so the replacing revision itself is kept.
func ParseLog(r io.Reader, into *Repository, opts Options) error {
	pending := make([]pendingRevision, 0, 1024)
	deletes := make(map[string]int)

	err := eachElement(r, logEntryElement, func(dec *xml.Decoder, start *xml.StartElement) error {
		var entry logEntry
		if err := dec.DecodeElement(&entry, start); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		if entry.Revision == nil {
			return fmt.Errorf("%w: logentry: missing revision", ErrMalformedInput)
		}
		number, err := strconv.Atoi(strings.TrimSpace(*entry.Revision))
		if err != nil {
			return fmt.Errorf("%w: logentry: invalid revision: %s", ErrMalformedInput, err)
		}

		for _, touched := range entry.Paths {
			path, ok := opts.canonical(touched.Text)
			if !ok {
				log("r%d: dropping path %q", number, touched.Text)
				continue
			}
			kind, err := GetNodeKind(touched.Kind)
			if err != nil {
				log("r%d: %s: %s", number, path, err)
				continue
			}

			rev := NewRevision(path, strings.TrimSpace(entry.Date), entry.Author, entry.Message, number)
			if touched.Action != "" {
				if rev.Action, err = GetNodeAction(touched.Action); err != nil {
					log("r%d: %s: %s", number, path, err)
				}
			}
			if cut := rev.Supersedes(); cut > deletes[path] {
				deletes[path] = cut
			}

			pending = append(pending, pendingRevision{kind: kind, rev: rev})
		}

		return nil
	})
	if err != nil {
		return err
	}

	attached := 0
	for _, item := range pending {
		if cut := deletedAt(deletes, item.rev.Path); item.rev.Number <= cut {
			log("%s: belongs to an incarnation ended in r%d", item.rev, cut)
			continue
		}
		if into.attach(item.kind, item.rev) {
			attached++
		}
	}

	log("attached %d of %d logged path revisions", attached, len(pending))

	return nil
}

// deletedAt returns the newest revision that ended an incarnation of path or
// one of its parent directories, or 0.
func deletedAt(deletes map[string]int, path string) (cut int) {
	if len(deletes) == 0 {
		return 0
	}
	for {
		if number, ok := deletes[path]; ok && number > cut {
			cut = number
		}
		parent, ok := ParentPath(path)
		if !ok {
			return cut
		}
		path = parent
	}
}
