// Package manifest implements the manifest command: regenerate, or check,
// the library source list without touching the upstream clone.
package manifest

import (
	"context"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	buildmanifest "github.com/arthur-debert/vendorsync/pkg/manifest"
)

// ManifestOptions holds options for the manifest command
type ManifestOptions struct {
	internal.Options

	// Check computes the drift without writing
	Check bool
}

// ManifestResult describes the rewrite or the drift check
type ManifestResult struct {
	Path    string               `json:"path" yaml:"path"`
	Checked bool                 `json:"checked" yaml:"checked"`
	Subdirs []string             `json:"subdirs" yaml:"subdirs"`
	Sources []string             `json:"sources" yaml:"sources"`
	Result  buildmanifest.Result `json:"result" yaml:"result"`
	Diff    string               `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Drifted reports whether a check found the manifest out of date
func (r *ManifestResult) Drifted() bool {
	return r.Checked && r.Result.Changed
}

// Manifest rewrites the build manifest from the sources currently in the
// project, or only reports the difference when Check is set.
func Manifest(_ context.Context, opts ManifestOptions) (*ManifestResult, error) {
	logger := logging.GetLogger("commands.manifest")
	done := logging.LogOperationStart(logger, "manifest")
	defer done()

	env, err := internal.NewEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &ManifestResult{Path: env.Layout.ManifestPath, Checked: opts.Check}

	result.Subdirs, result.Sources, err = env.Sources()
	if err != nil {
		return nil, err
	}

	if opts.Check {
		drift, err := buildmanifest.Check(env.FS, env.Layout.ManifestPath, result.Sources, env.Manifest)
		if err != nil {
			return nil, err
		}
		result.Result = drift.Result
		result.Diff = drift.Diff
		return result, nil
	}

	result.Result, err = buildmanifest.Update(env.FS, env.Layout.ManifestPath, result.Sources, env.Manifest)
	if err != nil {
		return nil, err
	}
	return result, nil
}
