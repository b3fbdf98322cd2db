// Package filesystem provides the types.FS implementations for vendorsync.
//
// Both the real filesystem and the in-memory one used by tests are afero
// filesystems behind the same adapter.
package filesystem
