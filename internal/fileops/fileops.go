// Package fileops is the external file-operation collaborator the
// navigation core hands selected paths to. The index never performs
// file I/O itself; a failed operation surfaces as a message and leaves
// navigation state untouched.
package fileops

import (
	"fmt"
	"os"
)

// Operator performs the directory operations the browser can trigger.
type Operator interface {
	Copy(src, dest string) error
	Move(src, dest string) error
	Delete(path string) error
	Chdir(path string) error
}

// OperationError wraps a failed external operation with enough context
// for a user-facing message.
type OperationError struct {
	Op   string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// OS is the real-filesystem Operator.
type OS struct{}

// Copy replicates the directory tree at src into the directory dest,
// as a child named after src's last component, matching Move.
func (OS) Copy(src, dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		return &OperationError{Op: "copy", Path: dest, Err: err}
	}
	if !info.IsDir() {
		return &OperationError{Op: "copy", Path: dest, Err: fmt.Errorf("destination must be a directory")}
	}
	if err := os.CopyFS(joinBase(dest, src), os.DirFS(src)); err != nil {
		return &OperationError{Op: "copy", Path: src, Err: err}
	}
	return nil
}

// Move renames src into the directory dest.
func (o OS) Move(src, dest string) error {
	info, err := os.Stat(dest)
	if err != nil {
		return &OperationError{Op: "move", Path: dest, Err: err}
	}
	if !info.IsDir() {
		return &OperationError{Op: "move", Path: dest, Err: fmt.Errorf("destination must be a directory")}
	}
	if err := os.Rename(src, joinBase(dest, src)); err != nil {
		return &OperationError{Op: "move", Path: src, Err: err}
	}
	return nil
}

// Delete removes the directory tree at path.
func (OS) Delete(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &OperationError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// Chdir changes the process working directory.
func (OS) Chdir(path string) error {
	if err := os.Chdir(path); err != nil {
		return &OperationError{Op: "chdir", Path: path, Err: err}
	}
	return nil
}

func joinBase(dir, src string) string {
	base := src
	for i := len(src) - 1; i >= 0; i-- {
		if src[i] == '/' {
			base = src[i+1:]
			break
		}
	}
	if dir == "/" {
		return "/" + base
	}
	return dir + "/" + base
}
