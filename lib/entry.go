package svn

import (
	"strings"
)

// Node holds what directories and files have in common: identity, the
// metadata of the last commit from the listing, and accumulated history.
//
// Parent and Children are path keys into the owning Repository rather than
// pointers, so links can be thrown away and recomputed from the paths.
type Node struct {
	Path     string      // Full path from the repository root; unique.
	Revision int         // Last-commit revision number from the listing.
	Date     string      // Date of last commit.
	Author   string      // Author of last commit.
	History  []*Revision // Every revision that touched this path, in log order.
	Parent   string      // Path of the parent directory, empty for roots.
	Children []string    // Paths of child entries, sorted. Always empty for files.
}

// LastCommit returns the revision in this node's own history with the
// latest date, or nil if there is no history. Dates are fixed-width
// ISO-8601 so comparing them as strings orders them in time.
func (n *Node) LastCommit() *Revision {
	var last *Revision
	for _, rev := range n.History {
		if last == nil || rev.Date >= last.Date {
			last = rev
		}
	}
	return last
}

// HasRevision returns true if history already contains the numbered commit.
func (n *Node) HasRevision(number int) bool {
	for _, rev := range n.History {
		if rev.Number == number {
			return true
		}
	}
	return false
}

// addRevision appends rev unless the same commit is already recorded.
func (n *Node) addRevision(rev *Revision) bool {
	if n.HasRevision(rev.Number) {
		return false
	}
	n.History = append(n.History, rev)
	return true
}

// Entry is a Directory or a File.
type Entry interface {
	Kind() NodeKind
	BaseName() string
	Meta() *Node
}

type Directory struct {
	Node
}

func NewDirectory(path string, revision int, date, author string) *Directory {
	return &Directory{
		Node: Node{Path: path, Revision: revision, Date: date, Author: author},
	}
}

func (d *Directory) Kind() NodeKind { return NodeKindDir }
func (d *Directory) Meta() *Node    { return &d.Node }

// BaseName strips parent directories and marks the name as a directory
// with a trailing '/'.
func (d *Directory) BaseName() string {
	return BaseName(d.Path) + "/"
}

type File struct {
	Node
	Size int64 // Size in bytes at the last commit.
}

func NewFile(path string, revision int, date, author string, size int64) *File {
	return &File{
		Node: Node{Path: path, Revision: revision, Date: date, Author: author},
		Size: size,
	}
}

func (f *File) Kind() NodeKind   { return NodeKindFile }
func (f *File) Meta() *Node      { return &f.Node }
func (f *File) BaseName() string { return BaseName(f.Path) }

// FileType is the broad category a file is presented under.
type FileType string

const (
	FileTypeCode     FileType = "code"
	FileTypeTest     FileType = "test"
	FileTypeImage    FileType = "image"
	FileTypeResource FileType = "resource"
)

var (
	testMarkers     = []string{"test", "Tests"}
	codeExtensions  = []string{".py", ".java", ".css", ".js", ".htm"}
	imageExtensions = []string{".png", ".jpg", ".jpeg"}
)

func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

// Classify categorizes the file by its base name. Tests are checked first,
// so "fooTests.py" is a test and not code.
func (f *File) Classify() FileType {
	name := f.BaseName()
	switch {
	case containsAny(name, testMarkers):
		return FileTypeTest
	case containsAny(name, codeExtensions):
		return FileTypeCode
	case containsAny(name, imageExtensions):
		return FileTypeImage
	default:
		return FileTypeResource
	}
}
