package svn

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Source is a read-only, memory-mapped view of one xml document.
type Source struct {
	Path string
	Data mmap.MMap
}

// OpenSource maps the file at path into memory. Any failure to open or map
// the file is reported as ErrSourceUnavailable.
func OpenSource(path string) (*Source, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s: is a directory", ErrSourceUnavailable, path)
	}

	source := &Source{Path: path}

	// A zero-length mapping is an error on most platforms; an empty
	// document is just an empty listing.
	if info.Size() == 0 {
		return source, nil
	}

	if source.Data, err = mmap.Map(file, mmap.RDONLY, 0); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrSourceUnavailable, path, err)
	}

	log("mapped %s: %d bytes", path, len(source.Data))

	return source, nil
}

// Reader returns a reader over the whole document.
func (s *Source) Reader() *bytes.Reader {
	return bytes.NewReader(s.Data)
}

// Close releases the mapping. Note: This will invalidate any slices
// referencing the data.
func (s *Source) Close() error {
	if s.Data == nil {
		return nil
	}
	err := s.Data.Unmap()
	s.Data = nil
	return err
}
