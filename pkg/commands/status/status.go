// Package status provides the status command implementation for vendorsync.
//
// The status command answers two questions without changing anything:
//   - Which upstream commit is the vendored tree from? (recorded vs mirror)
//   - Does the build manifest list the sources actually present?
package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/manifest"
	"github.com/arthur-debert/vendorsync/pkg/paths"
	"github.com/arthur-debert/vendorsync/pkg/provenance"
)

// StatusOptions holds options for the status command
type StatusOptions struct {
	internal.Options
}

// StatusResult is a snapshot of the vendored tree's state
type StatusResult struct {
	Layout   paths.Layout `json:"layout" yaml:"layout"`
	Upstream string       `json:"upstream" yaml:"upstream"`
	Backend  string       `json:"backend" yaml:"backend"`

	Recorded      string `json:"recorded,omitempty" yaml:"recorded,omitempty"`
	RecordedFound bool   `json:"recorded_found" yaml:"recorded_found"`

	MirrorPresent bool   `json:"mirror_present" yaml:"mirror_present"`
	MirrorHead    string `json:"mirror_head,omitempty" yaml:"mirror_head,omitempty"`
	TreePresent   bool   `json:"tree_present" yaml:"tree_present"`

	Subdirs       []string        `json:"subdirs,omitempty" yaml:"subdirs,omitempty"`
	Sources       int             `json:"sources" yaml:"sources"`
	Manifest      *manifest.Drift `json:"manifest,omitempty" yaml:"manifest,omitempty"`
	ManifestError string          `json:"manifest_error,omitempty" yaml:"manifest_error,omitempty"`
}

// UpToDate reports whether the recorded commit is the mirror's head
func (r *StatusResult) UpToDate() bool {
	return r.RecordedFound && r.MirrorHead != "" && strings.EqualFold(r.Recorded, r.MirrorHead)
}

// Status inspects the project without running any step
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	logger := logging.GetLogger("commands.status")
	done := logging.LogOperationStart(logger, "status")
	defer done()

	env, err := internal.NewEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Layout:   env.Layout,
		Upstream: env.Mirror.URL,
		Backend:  env.Config.Upstream.Backend,
	}

	result.Recorded, result.RecordedFound, err = provenance.Current(env.FS, env.Layout.ReadmePath, env.Config.Provenance.Tag)
	if err != nil {
		return nil, err
	}

	if env.Mirror.Exists() {
		result.MirrorPresent = true
		head, err := env.Mirror.Head(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Could not read mirror revision")
		} else {
			result.MirrorHead = head
		}
	}

	if info, err := env.FS.Stat(env.Layout.TreeDir); err == nil && info.IsDir() {
		result.TreePresent = true
	}

	if !result.TreePresent && len(env.Config.Manifest.Subdirs) == 0 {
		return result, nil
	}

	subdirs, sources, err := env.Sources()
	if err != nil {
		return nil, err
	}
	result.Subdirs = subdirs
	result.Sources = len(sources)

	drift, err := manifest.Check(env.FS, env.Layout.ManifestPath, sources, env.Manifest)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrFileAccess) {
			return nil, err
		}
		result.ManifestError = err.Error()
		return result, nil
	}
	result.Manifest = &drift

	return result, nil
}

// Markdown renders the report for the terminal
func (r *StatusResult) Markdown() string {
	var b strings.Builder

	b.WriteString("# Vendored upstream\n\n")
	fmt.Fprintf(&b, "- **Upstream:** %s (%s)\n", r.Upstream, r.Backend)
	fmt.Fprintf(&b, "- **Project root:** `%s`\n\n", r.Layout.Root)

	b.WriteString("## Provenance\n\n")
	b.WriteString("| | Commit |\n|---|---|\n")
	if r.RecordedFound {
		fmt.Fprintf(&b, "| Recorded | `%s` |\n", r.Recorded)
	} else {
		b.WriteString("| Recorded | _none_ |\n")
	}
	switch {
	case r.MirrorHead != "":
		fmt.Fprintf(&b, "| Mirror | `%s` |\n", r.MirrorHead)
	case r.MirrorPresent:
		b.WriteString("| Mirror | _unreadable_ |\n")
	default:
		b.WriteString("| Mirror | _not cloned_ |\n")
	}
	b.WriteString("\n")
	if r.UpToDate() {
		b.WriteString("The recorded commit matches the mirror.\n\n")
	} else if r.MirrorHead != "" {
		b.WriteString("The recorded commit differs from the mirror: run `vendorsync sync` or `vendorsync provenance`.\n\n")
	}

	b.WriteString("## Build manifest\n\n")
	switch {
	case r.ManifestError != "":
		fmt.Fprintf(&b, "Could not read `%s`: %s\n", r.Layout.ManifestPath, r.ManifestError)
	case r.Manifest == nil:
		b.WriteString("No generated tree yet, nothing to compare.\n")
	case !r.Manifest.Found:
		fmt.Fprintf(&b, "No library block found in `%s`.\n", r.Layout.ManifestPath)
	case r.Manifest.Changed:
		fmt.Fprintf(&b, "`%s` is **out of date** (%d sources discovered in %s).\n\n",
			r.Layout.ManifestPath, r.Sources, strings.Join(r.Subdirs, ", "))
		b.WriteString("```diff\n")
		b.WriteString(r.Manifest.Diff)
		b.WriteString("```\n")
	default:
		fmt.Fprintf(&b, "`%s` lists all %d sources.\n", r.Layout.ManifestPath, r.Sources)
	}

	return b.String()
}
