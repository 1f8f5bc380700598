package svn

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

/*
lists -> list *

list -> entry *

entry ->
  <entry kind="dir|file">
    <name>path</name>
    [<size>bytes</size>]                 files only
    <commit revision="number">           last commit is an attribute
      <author>name</author>
      <date>timestamp</date>
    </commit>
  </entry>
*/

type listCommit struct {
	Revision *string `xml:"revision,attr"`
	Author   *string `xml:"author"`
	Date     *string `xml:"date"`
}

type listEntry struct {
	Kind   string      `xml:"kind,attr"`
	Name   *string     `xml:"name"`
	Size   *string     `xml:"size"`
	Commit *listCommit `xml:"commit"`

	// Some exporters flatten author and date into the entry itself.
	Author *string `xml:"author"`
	Date   *string `xml:"date"`
}

// ParseListing reads an `svn list --xml` document, returning a Directory or
// File for every entry keyed by its name. Entries of any other kind are
// skipped. An entry missing a field it needs is reported as
// ErrMalformedInput and aborts the parse.
func ParseListing(r io.Reader) (directories map[string]*Directory, files map[string]*File, err error) {
	directories = make(map[string]*Directory)
	files = make(map[string]*File)

	err = eachElement(r, listEntryElement, func(dec *xml.Decoder, start *xml.StartElement) error {
		var entry listEntry
		if err := dec.DecodeElement(&entry, start); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}

		kind, err := GetNodeKind(entry.Kind)
		if err != nil {
			log("skipping listing entry: %s", err)
			return nil
		}

		node, err := entry.node()
		if err != nil {
			return err
		}

		if kind == NodeKindDir {
			directories[node.Path] = &Directory{Node: node}
			log("| dir  r%-6d %s", node.Revision, node.Path)
			return nil
		}

		size, err := entry.size()
		if err != nil {
			return err
		}
		files[node.Path] = &File{Node: node, Size: size}
		log("| file r%-6d %s (%d)", node.Revision, node.Path, size)

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return directories, files, nil
}

func (e *listEntry) label() string {
	if e.Name != nil {
		return *e.Name
	}
	return "<unnamed " + e.Kind + ">"
}

func missingField(label, field string) error {
	return fmt.Errorf("%w: %s: missing %s", ErrMalformedInput, label, field)
}

func (e *listEntry) node() (node Node, err error) {
	label := e.label()

	if e.Name == nil {
		return node, missingField(label, "name")
	}
	if e.Commit == nil || e.Commit.Revision == nil {
		return node, missingField(label, "commit revision")
	}

	author, date := e.Author, e.Date
	if e.Commit.Author != nil {
		author = e.Commit.Author
	}
	if e.Commit.Date != nil {
		date = e.Commit.Date
	}
	if author == nil {
		return node, missingField(label, "author")
	}
	if date == nil {
		return node, missingField(label, "date")
	}

	revision, err := strconv.Atoi(strings.TrimSpace(*e.Commit.Revision))
	if err != nil {
		return node, fmt.Errorf("%w: %s: invalid commit revision: %s", ErrMalformedInput, label, err)
	}

	return Node{
		Path:     *e.Name,
		Revision: revision,
		Date:     strings.TrimSpace(*date),
		Author:   strings.TrimSpace(*author),
	}, nil
}

func (e *listEntry) size() (int64, error) {
	if e.Size == nil {
		return 0, missingField(e.label(), "size")
	}
	size, err := strconv.ParseInt(strings.TrimSpace(*e.Size), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: invalid size: %s", ErrMalformedInput, e.label(), err)
	}
	return size, nil
}

// eachElement streams a document and calls fn for every element with the
// given local name, wherever it appears. fn is responsible for consuming
// the element.
func eachElement(r io.Reader, name string, fn func(*xml.Decoder, *xml.StartElement) error) error {
	dec := xml.NewDecoder(r)
	for {
		token, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != name {
			continue
		}
		if err := fn(dec, &start); err != nil {
			return err
		}
	}
}
