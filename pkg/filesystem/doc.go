// Package filesystem provides filesystem implementations for dotlink.
//
// This package contains implementations of the types.FS interface backed
// by afero: the OS filesystem used by the CLI and in-memory filesystems
// used by tests that do not need symlinks.
package filesystem
