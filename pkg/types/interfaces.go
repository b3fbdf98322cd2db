package types

import (
	"io/fs"
	"path/filepath"
)

// FS is the filesystem interface required for vendorsync operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	// Lstat does not follow a final symlink
	Lstat(name string) (fs.FileInfo, error)
	Readlink(name string) (string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Walk visits every file and directory under root in lexical order,
	// following the filepath.Walk contract.
	Walk(root string, fn filepath.WalkFunc) error

	// Rename replaces newpath when it exists
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}
