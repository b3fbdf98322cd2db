// Package provenance implements the provenance command: write the mirror's
// current commit into the project's documentation file.
package provenance

import (
	"context"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/provenance"
)

// ProvenanceOptions holds options for the provenance command
type ProvenanceOptions struct {
	internal.Options

	// Commit records this commit instead of asking the mirror
	Commit string
}

// ProvenanceResult is what was recorded
type ProvenanceResult struct {
	Path   string            `json:"path" yaml:"path"`
	Commit string            `json:"commit" yaml:"commit"`
	URL    string            `json:"url" yaml:"url"`
	Result provenance.Result `json:"result" yaml:"result"`
}

// Provenance records the upstream commit
func Provenance(ctx context.Context, opts ProvenanceOptions) (*ProvenanceResult, error) {
	logger := logging.GetLogger("commands.provenance")
	done := logging.LogOperationStart(logger, "provenance")
	defer done()

	env, err := internal.NewEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	commit := opts.Commit
	if commit == "" {
		if !env.Mirror.Exists() {
			return nil, errors.Newf(errors.ErrNotFound,
				"no upstream clone at %s, run sync first or pass a commit", env.Mirror.Dir).
				WithDetail("dir", env.Mirror.Dir)
		}
		commit, err = env.Mirror.Head(ctx)
		if err != nil {
			return nil, err
		}
	}

	res, err := provenance.Record(env.FS, env.Layout.ReadmePath, env.Config.Provenance.Tag, commit, env.Mirror.URL)
	if err != nil {
		return nil, err
	}

	return &ProvenanceResult{
		Path:   env.Layout.ReadmePath,
		Commit: commit,
		URL:    env.Mirror.CommitURL(commit),
		Result: res,
	}, nil
}
