// Package sync implements the full synchronization pipeline:
// install deps, mirror upstream, regenerate the tree, copy it into the
// project, rewrite the build manifest and record provenance.
package sync

import (
	"context"
	"time"

	"github.com/arthur-debert/vendorsync/pkg/commands/deps"
	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	pkgdeps "github.com/arthur-debert/vendorsync/pkg/deps"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/manifest"
	"github.com/arthur-debert/vendorsync/pkg/paths"
	"github.com/arthur-debert/vendorsync/pkg/provenance"
	"github.com/arthur-debert/vendorsync/pkg/treesync"
)

// Step names a stage of the pipeline
type Step string

const (
	StepDeps       Step = "deps"
	StepMirror     Step = "mirror"
	StepGenerate   Step = "generate"
	StepTree       Step = "tree"
	StepManifest   Step = "manifest"
	StepProvenance Step = "provenance"
)

// SyncOptions holds options for the sync command
type SyncOptions struct {
	internal.Options

	// SkipDeps skips the dependency step entirely
	SkipDeps bool

	// SkipUpdate reuses the existing clone without pulling; the tree is
	// still regenerated
	SkipUpdate bool

	Resolver  pkgdeps.Resolver
	Installer pkgdeps.Installer

	// OnStep is called as each step starts
	OnStep func(Step)
}

// SyncResult is the outcome of a full run
type SyncResult struct {
	Layout     paths.Layout      `json:"layout" yaml:"layout"`
	Deps       *deps.DepsResult  `json:"deps,omitempty" yaml:"deps,omitempty"`
	Cloned     bool              `json:"cloned" yaml:"cloned"`
	Commit     string            `json:"commit" yaml:"commit"`
	CommitURL  string            `json:"commit_url" yaml:"commit_url"`
	Tree       treesync.Result   `json:"tree" yaml:"tree"`
	Subdirs    []string          `json:"subdirs" yaml:"subdirs"`
	Sources    []string          `json:"sources" yaml:"sources"`
	Manifest   manifest.Result   `json:"manifest" yaml:"manifest"`
	Provenance provenance.Result `json:"provenance" yaml:"provenance"`
	Warnings   []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
	Steps      []Step            `json:"steps" yaml:"steps"`
}

// Sync runs the pipeline. The first fatal error aborts it; the partial
// result says which steps completed.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	logger := logging.GetLogger("commands.sync")
	start := time.Now()
	defer logging.LogDuration(start, "sync")

	env, err := internal.NewEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Layout: env.Layout}
	step := func(s Step) func() {
		if opts.OnStep != nil {
			opts.OnStep(s)
		}
		done := logging.LogOperationStart(logger, string(s))
		return func() {
			done()
			result.Steps = append(result.Steps, s)
		}
	}
	defer func() { result.Duration = time.Since(start) }()

	if !opts.SkipDeps {
		done := step(StepDeps)
		result.Deps, err = deps.Run(ctx, env, opts.Resolver, opts.Installer, false)
		if err != nil {
			return result, err
		}
		if result.Deps.Missing() > 0 {
			result.Warnings = append(result.Warnings, "some generator dependencies could not be installed")
		}
		done()
	}

	if opts.SkipUpdate && env.Mirror.Exists() {
		logger.Info().Str("dir", env.Mirror.Dir).Msg("Skipping upstream update")
	} else {
		done := step(StepMirror)
		result.Cloned, err = env.Mirror.Update(ctx)
		if err != nil {
			return result, err
		}
		done()
	}

	done := step(StepGenerate)
	if err := env.Mirror.Generate(ctx, env.Layout.TreeDir); err != nil {
		return result, err
	}
	done()

	done = step(StepTree)
	result.Tree, err = treesync.Sync(ctx, env.FS, treesync.Options{
		TreeDir:     env.Layout.TreeDir,
		ProjectRoot: env.Layout.Root,
		Applier:     env.Tree,
	})
	if err != nil {
		return result, err
	}
	done()

	done = step(StepManifest)
	result.Subdirs, result.Sources, err = env.Sources()
	if err != nil {
		return result, err
	}
	result.Manifest, err = manifest.Update(env.FS, env.Layout.ManifestPath, result.Sources, env.Manifest)
	if err != nil {
		return result, err
	}
	switch {
	case !result.Manifest.Found:
		result.Warnings = append(result.Warnings, "no library block found in "+env.Layout.ManifestPath)
	case !result.Manifest.Closed:
		result.Warnings = append(result.Warnings, "library block in "+env.Layout.ManifestPath+" is not closed")
	}
	done()

	done = step(StepProvenance)
	result.Commit, err = env.Mirror.Head(ctx)
	if err != nil {
		return result, err
	}
	result.CommitURL = env.Mirror.CommitURL(result.Commit)
	result.Provenance, err = provenance.Record(env.FS, env.Layout.ReadmePath, env.Config.Provenance.Tag, result.Commit, env.Mirror.URL)
	if err != nil {
		return result, err
	}
	if !result.Provenance.Found {
		result.Warnings = append(result.Warnings, "no "+env.Config.Provenance.Tag+" line found in "+env.Layout.ReadmePath)
	}
	done()

	logger.Info().
		Str("commit", result.Commit).
		Int("sources", len(result.Sources)).
		Int("warnings", len(result.Warnings)).
		Msg("Sync complete")

	return result, nil
}
