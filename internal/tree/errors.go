package tree

import "fmt"

// LoadError reports a failure to read the persisted path cache. It is
// non-fatal by contract: callers log it and start from an empty index.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load tree cache %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failure to write the persisted path cache at
// teardown. It is surfaced to the operator but never blocks exit.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save tree cache %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
