// Package config handles configuration management for vendorsync.
// It layers embedded defaults, the project's TOML file, an optional extra
// file and VENDORSYNC_ environment variables with koanf.
package config
