package tree

import (
	"os"
)

// Scanner lists the immediate subdirectories of a directory. The Store
// consults it during Rescan; the default implementation reads the real
// filesystem and tests substitute scripted trees.
type Scanner interface {
	ListDirs(path string) ([]string, error)
}

// osScanner reads directories from the operating system.
type osScanner struct{}

func (osScanner) ListDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, de := range entries {
		if !de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

// FakeScanner is a Scanner backed by an in-memory map of directory
// path to child names. Exported for tests in other packages.
type FakeScanner map[string][]string

func (f FakeScanner) ListDirs(path string) ([]string, error) {
	names, ok := f[normalize(path)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return names, nil
}
