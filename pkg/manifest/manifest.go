package manifest

import (
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/filesystem"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/types"
	"github.com/pmezard/go-difflib/difflib"
)

// Update rewrites the manifest at path in place, keeping its permissions.
// The file is only written when the content changes.
func Update(fsys types.FS, path string, files []string, opts Options) (Result, error) {
	logger := logging.GetLogger("manifest")

	info, err := fsys.Stat(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path).
			WithDetail("path", path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	res := Rewrite(string(data), files, opts)
	logResult(path, res)

	if !res.Changed {
		return res, nil
	}

	if err := filesystem.WriteFileAtomic(fsys, path, []byte(res.Text), info.Mode().Perm()); err != nil {
		return res, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	logger.Info().
		Str("path", path).
		Int("sources", res.Added).
		Msg("Build manifest updated")
	return res, nil
}

// Drift describes how a manifest differs from what Update would write
type Drift struct {
	Result
	Path string `json:"path" yaml:"path"`
	// Diff is a unified diff from the current to the expected content.
	Diff string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Check computes the rewrite without writing anything
func Check(fsys types.FS, path string, files []string, opts Options) (Drift, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Drift{Path: path}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path).
			WithDetail("path", path)
	}

	current := string(data)
	res := Rewrite(current, files, opts)
	logResult(path, res)

	drift := Drift{Result: res, Path: path}
	if !res.Changed {
		return drift, nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(res.Text),
		FromFile: path,
		ToFile:   path + " (expected)",
		Context:  3,
	})
	if err != nil {
		return drift, errors.Wrap(err, errors.ErrInternal, "failed to diff manifest")
	}
	drift.Diff = diff
	return drift, nil
}

func logResult(path string, res Result) {
	logger := logging.GetLogger("manifest")
	switch {
	case !res.Found:
		logger.Warn().Str("path", path).Msg("No library block found, manifest left unchanged")
	case !res.Closed:
		logger.Warn().Str("path", path).Msg("Library block is not closed, everything after the opener was dropped")
	default:
		logger.Debug().
			Str("path", path).
			Int("removed", res.Removed).
			Int("added", res.Added).
			Bool("changed", res.Changed).
			Msg("Library block rewritten")
	}
}
