package svn

import (
	"fmt"
	"sort"
	"strings"
)

// GroupFunc decides whether a top-level directory is a grouping unit.
type GroupFunc func(path string) bool

// ContainsToken returns a GroupFunc accepting paths that contain token.
func ContainsToken(token string) GroupFunc {
	return func(path string) bool {
		return strings.Contains(path, token)
	}
}

// Repository represents the reconstructed tree of a Subversion repository.
// Entries are owned by the two maps; links between them are path keys.
type Repository struct {
	Directories map[string]*Directory // Directories by path.
	Files       map[string]*File      // Files by path.

	group GroupFunc
}

// Build assembles flat collections of directories and files into a
// Repository, linking every entry to its parent directory. Entries whose
// parent is not present are left as roots. If group is nil, directories
// whose name contains DefaultGroupToken are the top-level groups.
func Build(directories map[string]*Directory, files map[string]*File, group GroupFunc) *Repository {
	if directories == nil {
		directories = make(map[string]*Directory)
	}
	if files == nil {
		files = make(map[string]*File)
	}
	if group == nil {
		group = ContainsToken(DefaultGroupToken)
	}

	r := &Repository{
		Directories: directories,
		Files:       files,
		group:       group,
	}
	r.Link()

	return r
}

// Link discards and recomputes the parent/child links of every entry from
// the paths alone, so it may be called any number of times.
func (r *Repository) Link() {
	for _, dir := range r.Directories {
		dir.Parent, dir.Children = "", nil
	}
	for _, file := range r.Files {
		file.Parent, file.Children = "", nil
	}

	for path, file := range r.Files {
		if parent := r.parentOf(path); parent != nil {
			file.Parent = parent.Path
			parent.Children = append(parent.Children, path)
		}
	}

	for path, dir := range r.Directories {
		if parent := r.parentOf(path); parent != nil {
			dir.Parent = parent.Path
			parent.Children = append(parent.Children, path)
		}
	}

	// Map iteration order is random, sort so walks are repeatable.
	for _, dir := range r.Directories {
		sort.Strings(dir.Children)
	}
}

func (r *Repository) parentOf(path string) *Directory {
	parentPath, ok := ParentPath(path)
	if !ok {
		return nil
	}
	return r.Directories[parentPath]
}

// TopLevelGroups returns the root directories that are grouping units,
// sorted by path.
func (r *Repository) TopLevelGroups() []*Directory {
	groups := make([]*Directory, 0)
	for path, dir := range r.Directories {
		if strings.Contains(path, "/") || !r.group(path) {
			continue
		}
		groups = append(groups, dir)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Path < groups[j].Path
	})
	return groups
}

// MergeRevisions attaches each revision to the directory and/or file with
// the same path, skipping any the entry already has a record of. Revisions
// for paths the repository doesn't contain are dropped. Returns the number
// of revisions attached.
func (r *Repository) MergeRevisions(revisions []*Revision) (added int) {
	for _, rev := range revisions {
		if dir, ok := r.Directories[rev.Path]; ok && dir.addRevision(rev) {
			added++
		}
		if file, ok := r.Files[rev.Path]; ok && file.addRevision(rev) {
			added++
		}
	}
	return added
}

// attach adds a revision to the entry of the given kind only.
func (r *Repository) attach(kind NodeKind, rev *Revision) bool {
	var node *Node
	switch kind {
	case NodeKindDir:
		if dir, ok := r.Directories[rev.Path]; ok {
			node = &dir.Node
		}
	case NodeKindFile:
		if file, ok := r.Files[rev.Path]; ok {
			node = &file.Node
		}
	}
	if node == nil {
		return false
	}
	return node.addRevision(rev)
}

// Directory returns the directory at exactly path, or nil.
func (r *Repository) Directory(path string) *Directory {
	return r.Directories[path]
}

// File returns the file at exactly path, or nil.
func (r *Repository) File(path string) *File {
	return r.Files[path]
}

// Lookup returns the directory or file at path, or nil if there is neither.
func (r *Repository) Lookup(path string) Entry {
	if dir, ok := r.Directories[path]; ok {
		return dir
	}
	if file, ok := r.Files[path]; ok {
		return file
	}
	return nil
}

// Parent returns the directory containing e, or nil for a root.
func (r *Repository) Parent(e Entry) *Directory {
	if parent := e.Meta().Parent; parent != "" {
		return r.Directories[parent]
	}
	return nil
}

// Children returns the entries directly below e, sorted by path.
func (r *Repository) Children(e Entry) []Entry {
	paths := e.Meta().Children
	children := make([]Entry, 0, len(paths))
	for _, path := range paths {
		if child := r.Lookup(path); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Roots returns every entry without a parent, sorted by path.
func (r *Repository) Roots() []Entry {
	roots := make([]Entry, 0)
	for _, dir := range r.Directories {
		if dir.Parent == "" {
			roots = append(roots, dir)
		}
	}
	for _, file := range r.Files {
		if file.Parent == "" {
			roots = append(roots, file)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Meta().Path < roots[j].Meta().Path
	})
	return roots
}

// Walk visits e and then every entry below it, depth first in path order.
// depth is 0 for e itself. Returning false from fn skips the entry's
// children.
func (r *Repository) Walk(e Entry, fn func(e Entry, depth int) bool) {
	r.walk(e, 0, fn)
}

func (r *Repository) walk(e Entry, depth int, fn func(Entry, int) bool) {
	if !fn(e, depth) {
		return
	}
	for _, child := range r.Children(e) {
		r.walk(child, depth+1, fn)
	}
}

// LatestRevision returns the most recent revision of e. A directory is as
// recent as its most recently touched descendant.
func (r *Repository) LatestRevision(e Entry) *Revision {
	latest := e.Meta().LastCommit()
	for _, child := range r.Children(e) {
		if rev := r.LatestRevision(child); rev != nil {
			if latest == nil || rev.Date > latest.Date {
				latest = rev
			}
		}
	}
	return latest
}

// Summary returns the message of e's latest revision.
func (r *Repository) Summary(e Entry) (string, error) {
	latest := r.LatestRevision(e)
	if latest == nil {
		return "", fmt.Errorf("%s: %w", e.Meta().Path, ErrNoHistory)
	}
	return latest.Message, nil
}

// Counts returns the number of directories and files.
func (r *Repository) Counts() (directories, files int) {
	return len(r.Directories), len(r.Files)
}
