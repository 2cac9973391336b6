package types

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

// DirPerm is the mode used for directories created by CreateDirectory
const DirPerm = 0755

// ActionKind identifies one of the three action variants
type ActionKind int

const (
	KindCreateDirectory ActionKind = iota
	KindCreateLink
	KindRemoveFile
)

func (k ActionKind) String() string {
	switch k {
	case KindCreateDirectory:
		return "create-directory"
	case KindCreateLink:
		return "create-link"
	case KindRemoveFile:
		return "remove-file"
	default:
		return "unknown"
	}
}

// Action is a single filesystem step of a plan. The set of implementations
// is closed: CreateDirectory, CreateLink and RemoveFile.
type Action interface {
	// Kind returns the variant of the action
	Kind() ActionKind

	// Target returns the path the action mutates
	Target() string

	// Destructive reports whether the action discards existing data
	Destructive() bool

	// Display writes a one-line preview of the action. It has no side effects.
	Display(w io.Writer)

	// Do performs the action and writes a confirmation line. Filesystem
	// errors are returned as is, wrapped with an error code.
	Do(fsys FS, w io.Writer) error

	isAction()
}

// Plan is an ordered list of actions
type Plan []Action

// Destructive returns the actions of the plan that require --force
func (p Plan) Destructive() Plan {
	var out Plan
	for _, a := range p {
		if a.Destructive() {
			out = append(out, a)
		}
	}
	return out
}

// CreateDirectory creates a single directory whose parent already exists
type CreateDirectory struct {
	Path string
}

func (a CreateDirectory) Kind() ActionKind  { return KindCreateDirectory }
func (a CreateDirectory) Target() string    { return a.Path }
func (a CreateDirectory) Destructive() bool { return false }

func (a CreateDirectory) Display(w io.Writer) {
	fmt.Fprintf(w, "create directory %s\n", a.Path)
}

func (a CreateDirectory) Do(fsys FS, w io.Writer) error {
	if err := fsys.Mkdir(a.Path, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", a.Path).
			WithDetail("path", a.Path)
	}
	fmt.Fprintf(w, "created directory %s\n", a.Path)
	return nil
}

func (a CreateDirectory) isAction() {}

// CreateLink creates Destination as a symlink to Source
type CreateLink struct {
	Source      string
	Destination string
}

func (a CreateLink) Kind() ActionKind  { return KindCreateLink }
func (a CreateLink) Target() string    { return a.Destination }
func (a CreateLink) Destructive() bool { return false }

func (a CreateLink) Display(w io.Writer) {
	fmt.Fprintf(w, "symlink %s to %s\n", a.Source, a.Destination)
}

func (a CreateLink) Do(fsys FS, w io.Writer) error {
	if err := fsys.Symlink(a.Source, a.Destination); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to symlink %s to %s", a.Source, a.Destination).
			WithDetail("source", a.Source).
			WithDetail("destination", a.Destination)
	}
	fmt.Fprintf(w, "symlinked %s to %s\n", a.Source, a.Destination)
	return nil
}

func (a CreateLink) isAction() {}

// RemoveFile removes an existing file, symlink or empty directory
type RemoveFile struct {
	Path string
}

func (a RemoveFile) Kind() ActionKind  { return KindRemoveFile }
func (a RemoveFile) Target() string    { return a.Path }
func (a RemoveFile) Destructive() bool { return true }

func (a RemoveFile) Display(w io.Writer) {
	fmt.Fprintf(w, "remove existing file %s\n", a.Path)
}

func (a RemoveFile) Do(fsys FS, w io.Writer) error {
	if err := fsys.Remove(a.Path); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", a.Path).
			WithDetail("path", a.Path)
	}
	fmt.Fprintf(w, "removed existing file %s\n", a.Path)
	return nil
}

func (a RemoveFile) isAction() {}
