// Package store keeps a parsed repository in a yaml file so it can be
// rebuilt, and later merged with newer exports, without re-reading the xml.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	svn "github.com/kfsone/svn-portfolio/lib"
	yml "gopkg.in/yaml.v3"
)

var (
	ErrNotFound = errors.New("not found")
)

// storeFileMode is used for a store file written for the first time.
const storeFileMode os.FileMode = 0644

// DirectoryRow is the stored form of a directory.
type DirectoryRow struct {
	Name     string `yaml:"name"`
	Revision int    `yaml:"revision"`
	Date     string `yaml:"date"`
	Author   string `yaml:"author"`
	Summary  string `yaml:"summary,omitempty"`
	Parent   string `yaml:"parent,omitempty"`
}

// FileRow is the stored form of a file.
type FileRow struct {
	DirectoryRow `yaml:",inline"`
	Size         int64 `yaml:"size"`
}

// RevisionRow is one revision of one path.
type RevisionRow struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Revision int    `yaml:"revision"`
	Date     string `yaml:"date"`
	Author   string `yaml:"author"`
	Message  string `yaml:"message"`
}

// CommentRow is a comment on a file, optionally replying to another.
type CommentRow struct {
	ID      int    `yaml:"id"`
	File    string `yaml:"file"`
	Parent  int    `yaml:"parent,omitempty"`
	Message string `yaml:"message"`
}

type tables struct {
	Directories []*DirectoryRow `yaml:"directories"`
	Files       []*FileRow      `yaml:"files"`
	Revisions   []*RevisionRow  `yaml:"revisions"`
	Comments    []*CommentRow   `yaml:"comments,omitempty"`
}

type revisionKey struct {
	name     string
	revision int
}

// Store is a set of tables persisted as a single yaml document.
type Store struct {
	Path string

	data tables

	directories map[string]*DirectoryRow
	files       map[string]*FileRow
	revisions   map[revisionKey]*RevisionRow
}

// Open loads the store at path. A store that doesn't exist yet is empty.
func Open(path string) (*Store, error) {
	s := &Store{Path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading store: %w", err)
	default:
		if err := yml.Unmarshal(data, &s.data); err != nil {
			return nil, fmt.Errorf("parsing store %s: %w", path, err)
		}
	}

	s.index()

	return s, nil
}

func (s *Store) index() {
	s.directories = make(map[string]*DirectoryRow, len(s.data.Directories))
	for _, row := range s.data.Directories {
		s.directories[row.Name] = row
	}
	s.files = make(map[string]*FileRow, len(s.data.Files))
	for _, row := range s.data.Files {
		s.files[row.Name] = row
	}
	s.revisions = make(map[revisionKey]*RevisionRow, len(s.data.Revisions))
	for _, row := range s.data.Revisions {
		s.revisions[revisionKey{row.Name, row.Revision}] = row
	}
}

func (s *Store) Directories() []*DirectoryRow { return s.data.Directories }
func (s *Store) Files() []*FileRow            { return s.data.Files }
func (s *Store) Revisions() []*RevisionRow    { return s.data.Revisions }

func (s *Store) FindDirectory(name string) *DirectoryRow {
	return s.directories[name]
}

func (s *Store) FindFile(name string) *FileRow {
	return s.files[name]
}

func (s *Store) FindRevision(name string, revision int) *RevisionRow {
	return s.revisions[revisionKey{name, revision}]
}

// SaveStats counts what Save changed.
type SaveStats struct {
	Added     int // New directory and file rows.
	Updated   int // Existing rows whose metadata was refreshed.
	Revisions int // New revision rows.
}

// Save merges a repository into the store: entries already stored have
// their metadata refreshed, new entries are added, and revisions are
// inserted unless the same path and revision number is already present.
// Nothing is removed.
func (s *Store) Save(repos *svn.Repository) (stats SaveStats) {
	for _, path := range sortedKeys(repos.Directories) {
		dir := repos.Directories[path]
		row, present := s.directories[path]
		if !present {
			row = &DirectoryRow{Name: path}
			s.data.Directories = append(s.data.Directories, row)
			s.directories[path] = row
			stats.Added++
		} else {
			stats.Updated++
		}
		row.update(repos, dir)
		stats.Revisions += s.addRevisions(dir.History)
	}

	for _, path := range sortedKeys(repos.Files) {
		file := repos.Files[path]
		row, present := s.files[path]
		if !present {
			row = &FileRow{DirectoryRow: DirectoryRow{Name: path}}
			s.data.Files = append(s.data.Files, row)
			s.files[path] = row
			stats.Added++
		} else {
			stats.Updated++
		}
		row.update(repos, file)
		row.Size = file.Size
		stats.Revisions += s.addRevisions(file.History)
	}

	return stats
}

func (row *DirectoryRow) update(repos *svn.Repository, e svn.Entry) {
	node := e.Meta()
	row.Revision = node.Revision
	row.Date = node.Date
	row.Author = node.Author
	row.Parent = node.Parent
	if summary, err := repos.Summary(e); err == nil {
		row.Summary = summary
	}
}

func (s *Store) addRevisions(history []*svn.Revision) (added int) {
	for _, rev := range history {
		key := revisionKey{rev.Path, rev.Number}
		if _, present := s.revisions[key]; present {
			continue
		}
		row := &RevisionRow{
			ID:       len(s.data.Revisions) + 1,
			Name:     rev.Path,
			Revision: rev.Number,
			Date:     rev.Date,
			Author:   rev.Author,
			Message:  rev.Message,
		}
		s.data.Revisions = append(s.data.Revisions, row)
		s.revisions[key] = row
		added++
	}
	return added
}

// Repository rebuilds a Repository from the stored rows.
func (s *Store) Repository(group svn.GroupFunc) *svn.Repository {
	directories := make(map[string]*svn.Directory, len(s.data.Directories))
	for _, row := range s.data.Directories {
		directories[row.Name] = svn.NewDirectory(row.Name, row.Revision, row.Date, row.Author)
	}
	files := make(map[string]*svn.File, len(s.data.Files))
	for _, row := range s.data.Files {
		files[row.Name] = svn.NewFile(row.Name, row.Revision, row.Date, row.Author, row.Size)
	}

	repos := svn.Build(directories, files, group)

	revisions := make([]*svn.Revision, 0, len(s.data.Revisions))
	for _, row := range s.data.Revisions {
		revisions = append(revisions, svn.NewRevision(row.Name, row.Date, row.Author, row.Message, row.Revision))
	}
	repos.MergeRevisions(revisions)

	return repos
}

// AddComment records a comment on a stored file after passing it through
// the word filter. parent is the id of the comment being replied to, or 0.
func (s *Store) AddComment(file string, parent int, message string, words map[string]string) (*CommentRow, error) {
	if s.FindFile(file) == nil {
		return nil, fmt.Errorf("file %s: %w", file, ErrNotFound)
	}
	if parent != 0 && s.findComment(parent) == nil {
		return nil, fmt.Errorf("comment %d: %w", parent, ErrNotFound)
	}

	row := &CommentRow{
		ID:      len(s.data.Comments) + 1,
		File:    file,
		Parent:  parent,
		Message: svn.FilterText(message, words),
	}
	s.data.Comments = append(s.data.Comments, row)

	return row, nil
}

func (s *Store) findComment(id int) *CommentRow {
	if id < 1 || id > len(s.data.Comments) {
		return nil
	}
	return s.data.Comments[id-1]
}

// Comments returns the top-level comments on a file, oldest first.
func (s *Store) Comments(file string) []*CommentRow {
	return s.selectComments(func(row *CommentRow) bool {
		return row.File == file && row.Parent == 0
	})
}

// Replies returns the replies to a comment, newest first.
func (s *Store) Replies(id int) []*CommentRow {
	replies := s.selectComments(func(row *CommentRow) bool {
		return row.Parent == id
	})
	for i, j := 0, len(replies)-1; i < j; i, j = i+1, j-1 {
		replies[i], replies[j] = replies[j], replies[i]
	}
	return replies
}

func (s *Store) selectComments(match func(*CommentRow) bool) []*CommentRow {
	rows := make([]*CommentRow, 0)
	for _, row := range s.data.Comments {
		if match(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Flush writes the store back to its file, replacing it atomically.
func (s *Store) Flush() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := yml.NewEncoder(tmp)
	enc.SetIndent(2)
	if err := enc.Encode(&s.data); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(s.fileMode()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.Path)
}

// fileMode keeps the permissions of the store being replaced.
func (s *Store) fileMode() os.FileMode {
	if info, err := os.Stat(s.Path); err == nil {
		return info.Mode().Perm()
	}
	return storeFileMode
}

func sortedKeys[V any](table map[string]V) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
