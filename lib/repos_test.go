package svn

import (
	"errors"
	"reflect"
	"testing"
)

type reposFixture struct {
	dir      *Directory
	file     *File
	revision *Revision
	repos    *Repository
}

func newReposFixture() *reposFixture {
	f := &reposFixture{
		dir:  NewDirectory("Assignment5.0", 1, "2017-04-12T00:00:00.000000Z", "lstrait2"),
		file: NewFile("Assignment5.0/f.txt", 2, "2017-04-13T00:00:00.000000Z", "lstrait2", 25),
	}
	f.revision = NewRevision("Assignment5.0/f.txt", "2016-04-13T00:00:00.000000Z", "lstrait2", "this is a commit", 17)
	f.file.History = append(f.file.History, f.revision)
	f.dir.History = append(f.dir.History, f.revision)

	f.repos = Build(
		map[string]*Directory{f.dir.Path: f.dir},
		map[string]*File{f.file.Path: f.file},
		nil,
	)
	return f
}

func TestBuildLinksParentAndChildren(t *testing.T) {
	f := newReposFixture()

	if f.file.Parent != f.dir.Path {
		t.Errorf("file.Parent = %q, want %q", f.file.Parent, f.dir.Path)
	}
	if got := f.repos.Parent(f.file); got != f.dir {
		t.Errorf("Parent(file) = %v, want %v", got, f.dir)
	}
	if want := []string{f.file.Path}; !reflect.DeepEqual(f.dir.Children, want) {
		t.Errorf("dir.Children = %v, want %v", f.dir.Children, want)
	}
	if f.dir.Parent != "" || f.repos.Parent(f.dir) != nil {
		t.Errorf("top-level dir should have no parent, got %q", f.dir.Parent)
	}
}

func TestBuildUnrelatedPathsStayUnlinked(t *testing.T) {
	dir := NewDirectory("Assignment5.0", 1, "", "")
	file := NewFile("Assignment6.0/f.txt", 2, "", "", 25)
	Build(map[string]*Directory{dir.Path: dir}, map[string]*File{file.Path: file}, nil)

	if file.Parent != "" || dir.Parent != "" {
		t.Errorf("expected no parents, got file=%q dir=%q", file.Parent, dir.Parent)
	}
	if len(file.Children) != 0 || len(dir.Children) != 0 {
		t.Errorf("expected no children, got file=%v dir=%v", file.Children, dir.Children)
	}
}

func TestBuildNestedDirectories(t *testing.T) {
	dirs := map[string]*Directory{
		"A":     NewDirectory("A", 1, "", ""),
		"A/b":   NewDirectory("A/b", 1, "", ""),
		"A/b/c": NewDirectory("A/b/c", 1, "", ""),
		"X/y":   NewDirectory("X/y", 1, "", ""),
	}
	files := map[string]*File{
		"A/z.txt":   NewFile("A/z.txt", 1, "", "", 1),
		"A/b/c/f.c": NewFile("A/b/c/f.c", 1, "", "", 1),
		"root.txt":  NewFile("root.txt", 1, "", "", 1),
	}
	repos := Build(dirs, files, nil)

	if want := []string{"A/b", "A/z.txt"}; !reflect.DeepEqual(dirs["A"].Children, want) {
		t.Errorf("A.Children = %v, want %v", dirs["A"].Children, want)
	}
	if dirs["A/b/c"].Parent != "A/b" {
		t.Errorf("A/b/c.Parent = %q, want A/b", dirs["A/b/c"].Parent)
	}
	// X is not in the listing, so X/y is an orphan.
	if dirs["X/y"].Parent != "" {
		t.Errorf("X/y.Parent = %q, want none", dirs["X/y"].Parent)
	}
	if files["root.txt"].Parent != "" {
		t.Errorf("root.txt.Parent = %q, want none", files["root.txt"].Parent)
	}

	var roots []string
	for _, root := range repos.Roots() {
		roots = append(roots, root.Meta().Path)
	}
	if want := []string{"A", "X/y", "root.txt"}; !reflect.DeepEqual(roots, want) {
		t.Errorf("Roots() = %v, want %v", roots, want)
	}

	// Linking again must not duplicate children.
	repos.Link()
	if len(dirs["A"].Children) != 2 {
		t.Errorf("after relink A.Children = %v", dirs["A"].Children)
	}

	var walked []string
	repos.Walk(dirs["A"], func(e Entry, depth int) bool {
		walked = append(walked, e.BaseName())
		return true
	})
	if want := []string{"A/", "b/", "c/", "f.c", "z.txt"}; !reflect.DeepEqual(walked, want) {
		t.Errorf("Walk() = %v, want %v", walked, want)
	}
}

func TestTopLevelGroups(t *testing.T) {
	dirs := map[string]*Directory{}
	for _, path := range []string{"Assignment2", "Junk", "Assignment1.2", "Assignment0", "Assignment0/Assignment0.1"} {
		dirs[path] = NewDirectory(path, 1, "", "")
	}
	repos := Build(dirs, nil, nil)

	var got []string
	for _, group := range repos.TopLevelGroups() {
		got = append(got, group.Path)
	}
	if want := []string{"Assignment0", "Assignment1.2", "Assignment2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TopLevelGroups() = %v, want %v", got, want)
	}

	custom := Build(dirs, nil, ContainsToken("Junk"))
	if groups := custom.TopLevelGroups(); len(groups) != 1 || groups[0].Path != "Junk" {
		t.Errorf("custom TopLevelGroups() = %v", groups)
	}
}

func TestLatestRevision(t *testing.T) {
	f := newReposFixture()
	if got := f.repos.LatestRevision(f.dir); got != f.revision {
		t.Errorf("LatestRevision(dir) = %v, want %v", got, f.revision)
	}

	// A newer commit on both is the latest for both.
	newer := NewRevision("18", "2016-04-14T00:00:00.000000Z", "lstrait2", "this is a new commit", 18)
	f.file.History = append(f.file.History, newer)
	f.dir.History = append(f.dir.History, newer)
	if got := f.repos.LatestRevision(f.file); got != newer {
		t.Errorf("LatestRevision(file) = %v, want %v", got, newer)
	}
	if got := f.repos.LatestRevision(f.dir); got != newer {
		t.Errorf("LatestRevision(dir) = %v, want %v", got, newer)
	}
}

func TestLatestRevisionInheritedFromChild(t *testing.T) {
	f := newReposFixture()
	newer := NewRevision(f.file.Path, "2016-04-14T00:00:00.000000Z", "lstrait2", "this is a new commit", 18)
	f.file.History = append(f.file.History, newer)

	if got := f.repos.LatestRevision(f.dir); got != newer {
		t.Errorf("LatestRevision(dir) = %v, want the child's %v", got, newer)
	}
	summary, err := f.repos.Summary(f.dir)
	if err != nil || summary != "this is a new commit" {
		t.Errorf("Summary(dir) = %q, %v", summary, err)
	}
}

func TestSummary(t *testing.T) {
	f := newReposFixture()
	for _, e := range []Entry{f.file, f.dir} {
		summary, err := f.repos.Summary(e)
		if err != nil {
			t.Fatalf("Summary(%s) error = %v", e.Meta().Path, err)
		}
		if summary != "this is a commit" {
			t.Errorf("Summary(%s) = %q, want %q", e.Meta().Path, summary, "this is a commit")
		}
	}
}

func TestSummaryWithoutHistory(t *testing.T) {
	dir := NewDirectory("Empty", 1, "", "")
	child := NewDirectory("Empty/child", 1, "", "")
	repos := Build(map[string]*Directory{dir.Path: dir, child.Path: child}, nil, nil)

	if got := repos.LatestRevision(dir); got != nil {
		t.Errorf("LatestRevision() = %v, want nil", got)
	}
	if _, err := repos.Summary(dir); !errors.Is(err, ErrNoHistory) {
		t.Errorf("Summary() error = %v, want ErrNoHistory", err)
	}
}

func TestMergeRevisions(t *testing.T) {
	dir := NewDirectory("A", 5, "", "")
	file := NewFile("A/f.txt", 5, "", "", 1)
	repos := Build(map[string]*Directory{dir.Path: dir}, map[string]*File{file.Path: file}, nil)

	revisions := []*Revision{
		NewRevision("A", "2017-01-01T00:00:00.000000Z", "a", "create", 1),
		NewRevision("A/f.txt", "2017-01-01T00:00:00.000000Z", "a", "create", 1),
		NewRevision("A/f.txt", "2017-01-05T00:00:00.000000Z", "a", "edit", 5),
		NewRevision("A/gone.txt", "2017-01-03T00:00:00.000000Z", "a", "deleted later", 3),
	}

	if added := repos.MergeRevisions(revisions); added != 3 {
		t.Errorf("first MergeRevisions() = %d, want 3", added)
	}
	if len(dir.History) != 1 || len(file.History) != 2 {
		t.Fatalf("history lengths dir=%d file=%d, want 1 and 2", len(dir.History), len(file.History))
	}

	if added := repos.MergeRevisions(revisions); added != 0 {
		t.Errorf("second MergeRevisions() = %d, want 0", added)
	}
	if len(dir.History) != 1 || len(file.History) != 2 {
		t.Errorf("history changed on repeat merge: dir=%d file=%d", len(dir.History), len(file.History))
	}
}

func TestLookup(t *testing.T) {
	f := newReposFixture()
	if got := f.repos.Lookup("Assignment5.0"); got != f.dir {
		t.Errorf("Lookup(dir) = %v", got)
	}
	if got := f.repos.Lookup("Assignment5.0/f.txt"); got != f.file {
		t.Errorf("Lookup(file) = %v", got)
	}
	if got := f.repos.Lookup("nope"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}
	if f.repos.File("Assignment5.0") != nil || f.repos.Directory("Assignment5.0/f.txt") != nil {
		t.Error("File/Directory lookups must not cross kinds")
	}
	if dirs, files := f.repos.Counts(); dirs != 1 || files != 1 {
		t.Errorf("Counts() = %d, %d", dirs, files)
	}
}
