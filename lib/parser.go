package svn

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"
)

// RewriteFunc maps a canonical path onto the path it should be stored
// under. Returning false removes the path from the repository entirely.
type RewriteFunc func(path string) (string, bool)

// Options controls how the xml sources become a Repository.
type Options struct {
	// Group selects the top-level groups; nil uses DefaultGroupToken.
	Group GroupFunc

	// PrefixLength is the number of characters stripped from every log
	// path. 0 selects DefaultPrefixLength and a negative value strips none.
	PrefixLength int

	// Rewrite, if set, is applied to every path from both sources.
	Rewrite RewriteFunc
}

func (o Options) prefixLength() int {
	switch {
	case o.PrefixLength == 0:
		return DefaultPrefixLength
	case o.PrefixLength < 0:
		return 0
	default:
		return o.PrefixLength
	}
}

func (o Options) rewrite(path string) (string, bool) {
	if o.Rewrite == nil {
		return path, true
	}
	return o.Rewrite(path)
}

// canonical turns a log path into the path the listing would use for it.
func (o Options) canonical(logPath string) (string, bool) {
	path, ok := stripChars(logPath, o.prefixLength())
	if !ok {
		return "", false
	}
	return o.rewrite(path)
}

// stripChars removes the first n characters (not bytes) of s, and reports
// false if nothing would be left.
func stripChars(s string, n int) (string, bool) {
	for ; n > 0 && len(s) > 0; n-- {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s, n == 0 && len(s) > 0
}

// rewriteEntries re-keys the listing maps after applying Rewrite. Two
// entries rewritten onto the same path are an error.
func (o Options) rewriteEntries(directories map[string]*Directory, files map[string]*File) (map[string]*Directory, map[string]*File, error) {
	if o.Rewrite == nil {
		return directories, files, nil
	}

	newDirectories := make(map[string]*Directory, len(directories))
	for _, path := range sortedKeys(directories) {
		dir := directories[path]
		if dir.Path = o.rewriteEntry(path); dir.Path == "" {
			continue
		}
		if _, dup := newDirectories[dir.Path]; dup {
			return nil, nil, fmt.Errorf("%w: %s: rewritten onto existing directory %s", ErrMalformedInput, path, dir.Path)
		}
		newDirectories[dir.Path] = dir
	}

	newFiles := make(map[string]*File, len(files))
	for _, path := range sortedKeys(files) {
		file := files[path]
		if file.Path = o.rewriteEntry(path); file.Path == "" {
			continue
		}
		if _, dup := newFiles[file.Path]; dup {
			return nil, nil, fmt.Errorf("%w: %s: rewritten onto existing file %s", ErrMalformedInput, path, file.Path)
		}
		if _, dup := newDirectories[file.Path]; dup {
			return nil, nil, fmt.Errorf("%w: %s: rewritten onto directory %s", ErrMalformedInput, path, file.Path)
		}
		newFiles[file.Path] = file
	}

	return newDirectories, newFiles, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (o Options) rewriteEntry(path string) string {
	newPath, keep := o.rewrite(path)
	switch {
	case !keep:
		log("filtered %s", path)
		return ""
	case newPath != path:
		log("rewrote %s -> %s", path, newPath)
	}
	return newPath
}

// Parser reads a listing and a log from disk into a Repository.
type Parser struct {
	ListFile string
	LogFile  string
	Options  Options

	// Repository is nil until the listing has been parsed.
	Repository *Repository
}

func NewParser(listFile, logFile string, opts Options) *Parser {
	return &Parser{ListFile: listFile, LogFile: logFile, Options: opts}
}

// ParseListing reads the listing and builds the directory/file tree,
// replacing any previously parsed Repository.
func (p *Parser) ParseListing() (*Repository, error) {
	source, err := OpenSource(p.ListFile)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	directories, files, err := ParseListing(source.Reader())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.ListFile, err)
	}
	if directories, files, err = p.Options.rewriteEntries(directories, files); err != nil {
		return nil, fmt.Errorf("%s: %w", p.ListFile, err)
	}

	p.Repository = Build(directories, files, p.Options.Group)

	return p.Repository, nil
}

// ParseLog reads the log into the Repository built by ParseListing.
func (p *Parser) ParseLog() error {
	if p.Repository == nil {
		return errors.New("log parsed before listing")
	}

	source, err := OpenSource(p.LogFile)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := ParseLog(source.Reader(), p.Repository, p.Options); err != nil {
		return fmt.Errorf("%s: %w", p.LogFile, err)
	}

	return nil
}

// ParseAll reads both sources and returns the finished Repository.
func (p *Parser) ParseAll() (*Repository, error) {
	if _, err := p.ParseListing(); err != nil {
		return nil, err
	}
	if err := p.ParseLog(); err != nil {
		return nil, err
	}
	return p.Repository, nil
}

// ParseAll is shorthand for NewParser(listFile, logFile, opts).ParseAll().
func ParseAll(listFile, logFile string, opts Options) (*Repository, error) {
	return NewParser(listFile, logFile, opts).ParseAll()
}

// Parse builds a Repository from a listing and a log that are already open.
func Parse(listing, logDoc io.Reader, opts Options) (*Repository, error) {
	directories, files, err := ParseListing(listing)
	if err != nil {
		return nil, err
	}
	if directories, files, err = opts.rewriteEntries(directories, files); err != nil {
		return nil, err
	}

	repos := Build(directories, files, opts.Group)
	if err := ParseLog(logDoc, repos, opts); err != nil {
		return nil, err
	}

	return repos, nil
}
