// Package commands provides high-level command implementations for vendorsync.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the sync components.
//
// Each command is implemented in its own subdirectory:
//   - sync/       - the full pipeline
//   - manifest/   - rewrite or check the build manifest only
//   - provenance/ - record the mirror's commit only
//   - deps/       - install generator dependencies only
//   - status/     - report recorded commit, mirror head and manifest drift
//   - genconfig/  - print or write the configuration
//   - internal/   - shared environment resolution
//
// This file re-exports all command functions so callers need one import.
package commands

import (
	"context"

	"github.com/arthur-debert/vendorsync/pkg/commands/deps"
	"github.com/arthur-debert/vendorsync/pkg/commands/genconfig"
	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/commands/manifest"
	"github.com/arthur-debert/vendorsync/pkg/commands/provenance"
	"github.com/arthur-debert/vendorsync/pkg/commands/status"
	"github.com/arthur-debert/vendorsync/pkg/commands/sync"
)

// Options are shared by every command
type Options = internal.Options

// Sync runs the whole pipeline: deps, mirror, generate, tree, manifest, provenance.
type (
	SyncOptions = sync.SyncOptions
	SyncResult  = sync.SyncResult
	Step        = sync.Step
)

const (
	StepDeps       = sync.StepDeps
	StepMirror     = sync.StepMirror
	StepGenerate   = sync.StepGenerate
	StepTree       = sync.StepTree
	StepManifest   = sync.StepManifest
	StepProvenance = sync.StepProvenance
)

func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	return sync.Sync(ctx, opts)
}

// Manifest regenerates or checks the build manifest.
type (
	ManifestOptions = manifest.ManifestOptions
	ManifestResult  = manifest.ManifestResult
)

func Manifest(ctx context.Context, opts ManifestOptions) (*ManifestResult, error) {
	return manifest.Manifest(ctx, opts)
}

// Provenance records the mirror's commit.
type (
	ProvenanceOptions = provenance.ProvenanceOptions
	ProvenanceResult  = provenance.ProvenanceResult
)

func Provenance(ctx context.Context, opts ProvenanceOptions) (*ProvenanceResult, error) {
	return provenance.Provenance(ctx, opts)
}

// Deps installs the generator's requirements.
type (
	DepsOptions = deps.DepsOptions
	DepsResult  = deps.DepsResult
)

func Deps(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	return deps.Deps(ctx, opts)
}

// Status reports the state of the vendored tree.
type (
	StatusOptions = status.StatusOptions
	StatusResult  = status.StatusResult
)

func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	return status.Status(ctx, opts)
}

// GenConfig prints or writes the configuration.
type (
	GenConfigOptions = genconfig.GenConfigOptions
	GenConfigResult  = genconfig.GenConfigResult
)

func GenConfig(ctx context.Context, opts GenConfigOptions) (*GenConfigResult, error) {
	return genconfig.GenConfig(ctx, opts)
}
