// Package deps makes sure the helper libraries the upstream tree generator
// imports are present before it runs.
//
// Probing and installing are separate capabilities (Resolver, Installer) so
// that tests and offline runs can swap the installer for NoopInstaller
// instead of mutating the host's package set. What happens when an install
// fails is decided by the configured policy: "warn" logs and carries on,
// "fail" aborts the run.
package deps
