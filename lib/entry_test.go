package svn

import "testing"

func TestFileClassify(t *testing.T) {
	tests := []struct {
		name string
		want FileType
	}{
		{"f.py", FileTypeCode},
		{"f.java", FileTypeCode},
		{"f.js", FileTypeCode},
		{"f.css", FileTypeCode},
		{"f.html", FileTypeCode},
		{"f_test.py", FileTypeTest},
		{"fTests.java", FileTypeTest},
		{"fooTests.py", FileTypeTest},
		{"hello.jpg", FileTypeImage},
		{"hello.jpeg", FileTypeImage},
		{"hello.png", FileTypeImage},
		{"f.txt", FileTypeResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := NewFile("Assignment5.0/"+tt.name, 2, "2017-04-13T00:00:00.000000Z", "lstrait2", 25)
			if got := file.Classify(); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIgnoresParentDirectories(t *testing.T) {
	// Only the base name counts, not the "test" directory above it.
	file := NewFile("Assignment1.0/src/test/logo.png", 1, "", "", 0)
	if got := file.Classify(); got != FileTypeImage {
		t.Errorf("Classify() = %q, want %q", got, FileTypeImage)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{NewFile("Assignment5.0/f.txt", 2, "", "", 25), "f.txt"},
		{NewFile("Dir1/Dir2/Dir3/Dir4/f.txt", 2, "", "", 25), "f.txt"},
		{NewFile("f.txt", 2, "", "", 25), "f.txt"},
		{NewDirectory("Assignment5.0", 1, "", ""), "Assignment5.0/"},
		{NewDirectory("Assignment5.0/src/pieces", 1, "", ""), "pieces/"},
	}

	for _, tt := range tests {
		if got := tt.entry.BaseName(); got != tt.want {
			t.Errorf("%s: BaseName() = %q, want %q", tt.entry.Meta().Path, got, tt.want)
		}
	}
}

func TestNewEntries(t *testing.T) {
	dir := NewDirectory("Assignment5.0", 1, "2017-04-12T00:00:00.000000Z", "lstrait2")
	if dir.Path != "Assignment5.0" || dir.Revision != 1 || dir.Author != "lstrait2" {
		t.Errorf("unexpected directory: %+v", dir.Node)
	}
	if dir.Kind() != NodeKindDir {
		t.Errorf("Kind() = %s, want dir", *dir.Kind())
	}

	file := NewFile("Assignment5.0/f.txt", 2, "2017-04-13T00:00:00.000000Z", "lstrait2", 25)
	if file.Size != 25 || file.Revision != 2 {
		t.Errorf("unexpected file: %+v", file)
	}
	if file.Kind() != NodeKindFile {
		t.Errorf("Kind() = %s, want file", *file.Kind())
	}
	if len(file.History) != 0 || file.Parent != "" || len(file.Children) != 0 {
		t.Errorf("new file should have no history or links: %+v", file.Node)
	}
}

func TestLastCommit(t *testing.T) {
	file := NewFile("Assignment5.0/f.txt", 18, "", "", 25)
	if got := file.LastCommit(); got != nil {
		t.Fatalf("LastCommit() on empty history = %v, want nil", got)
	}

	older := NewRevision(file.Path, "2016-04-13T00:00:00.000000Z", "lstrait2", "this is a commit", 17)
	newer := NewRevision(file.Path, "2016-04-14T00:00:00.000000Z", "lstrait2", "this is a new commit", 18)

	// History is in log order, newest first; LastCommit must go by date.
	file.History = append(file.History, newer, older)
	if got := file.LastCommit(); got != newer {
		t.Errorf("LastCommit() = %v, want %v", got, newer)
	}
}

func TestAddRevisionSkipsDuplicates(t *testing.T) {
	file := NewFile("a.txt", 1, "", "", 0)
	first := NewRevision("a.txt", "2017-01-01T00:00:00.000000Z", "a", "one", 1)
	again := NewRevision("a.txt", "2017-01-02T00:00:00.000000Z", "b", "differs", 1)

	if !file.addRevision(first) {
		t.Fatal("first addRevision should succeed")
	}
	if file.addRevision(again) {
		t.Error("same revision number should not be added twice")
	}
	if len(file.History) != 1 || file.History[0] != first {
		t.Errorf("History = %v, want [%v]", file.History, first)
	}
	if !first.Same(again) {
		t.Error("revisions with the same path and number should be the same")
	}
}
