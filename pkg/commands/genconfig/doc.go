// Package genconfig prints the configuration vendorsync would run with, as
// TOML that can be saved as the project's .vendorsync.toml.
package genconfig
