package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotlink operations
type FS interface {
	// Inspection
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)

	// Mutation
	Mkdir(name string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Remove(name string) error
}
