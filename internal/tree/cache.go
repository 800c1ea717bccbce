package tree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// The persisted cache is a newline-separated list of absolute
// directory paths in sequence order. Loading rebuilds an identical
// sequence because Add keeps entries sorted regardless of input order.

// Load reads cached paths from r into the store. Lines that are not
// absolute paths are skipped rather than failing the whole load.
func (s *Store) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.HasPrefix(line, "/") {
			continue
		}
		s.Add(line)
	}
	return sc.Err()
}

// LoadFile populates the store from the cache file at path. A missing
// or unreadable file degrades to an empty index and returns a
// *LoadError for the caller to log.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return nil
}

// Save writes the entry paths to w in sequence order.
func (s *Store) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for e := s.first; e != nil; e = e.next {
		if _, err := fmt.Fprintln(bw, e.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveFile writes the cache atomically (temp file plus rename) so a
// crash mid-write cannot corrupt the previous cache. Failures come
// back as *SaveError; the caller reports them and exits anyway.
func (s *Store) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tree-*")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if err := s.Save(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	return nil
}
