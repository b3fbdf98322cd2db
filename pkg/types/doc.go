// Package types holds the small set of interfaces shared across vendorsync
// packages. Keeping them here lets the filesystem-facing packages depend on
// an abstraction that tests back with an in-memory afero filesystem.
package types
