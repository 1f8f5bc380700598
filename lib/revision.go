package svn

import "fmt"

// Revision is one commit as it applies to one path. Revisions are created
// while reading a log (or loaded from a store) and never modified after.
type Revision struct {
	Path    string     `yaml:"path"`    // Canonical path the commit touched.
	Date    string     `yaml:"date"`    // ISO-8601 timestamp, fixed width.
	Author  string     `yaml:"author"`  // Committer.
	Message string     `yaml:"message"` // Commit message.
	Number  int        `yaml:"number"`  // Repository's number for the commit.
	Action  NodeAction `yaml:"-"`       // What the commit did to Path, if known.
}

// RevisionKey identifies a revision for de-duplication: two records of the
// same commit against the same path are the same revision even if the
// rest of their fields disagree.
type RevisionKey struct {
	Path   string
	Number int
}

func NewRevision(path, date, author, message string, number int) *Revision {
	return &Revision{
		Path:    path,
		Date:    date,
		Author:  author,
		Message: message,
		Number:  number,
	}
}

func (r *Revision) Key() RevisionKey {
	return RevisionKey{Path: r.Path, Number: r.Number}
}

// Same reports whether both revisions describe the same commit to the
// same path.
func (r *Revision) Same(other *Revision) bool {
	return other != nil && r.Key() == other.Key()
}

// Deleted reports whether the log recorded this revision as deleting Path.
func (r *Revision) Deleted() bool {
	return r.Action == NodeActionDelete
}

// Replaced reports whether the log recorded Path as deleted and added again
// within this revision.
func (r *Revision) Replaced() bool {
	return r.Action == NodeActionReplace
}

// Supersedes returns the newest revision number that belongs to an earlier
// incarnation of Path, or 0. A deletion ends the path at Number, while a
// replacement starts a new one at Number.
func (r *Revision) Supersedes() int {
	switch {
	case r.Deleted():
		return r.Number
	case r.Replaced():
		return r.Number - 1
	default:
		return 0
	}
}

func (r *Revision) String() string {
	return fmt.Sprintf("r%d:%s", r.Number, r.Path)
}
