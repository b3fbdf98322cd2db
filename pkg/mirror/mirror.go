package mirror

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/provenance"
	"github.com/arthur-debert/vendorsync/pkg/runner"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// Mirror is the local clone of the upstream repository
type Mirror struct {
	URL       string
	Branch    string
	Dir       string
	Generator config.Generator

	VCS    VCS
	Runner runner.Runner
	FS     types.FS
}

// Exists reports whether the clone directory is present
func (m *Mirror) Exists() bool {
	info, err := m.FS.Stat(m.Dir)
	return err == nil && info.IsDir()
}

// Update clones the upstream repository if the clone is absent and
// fast-forwards it otherwise. The clone's parent directory is created first.
func (m *Mirror) Update(ctx context.Context) (cloned bool, err error) {
	logger := logging.GetLogger("mirror")

	parent := filepath.Dir(m.Dir)
	if err := m.FS.MkdirAll(parent, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent).
			WithDetail("path", parent)
	}

	if !m.Exists() {
		logger.Info().Str("url", m.URL).Str("dir", m.Dir).Msg("Cloning upstream")
		if err := m.VCS.Clone(ctx, m.URL, m.Branch, m.Dir); err != nil {
			return false, errors.Wrapf(err, errors.ErrUpstream, "failed to clone %s", m.URL).
				WithDetail("url", m.URL).
				WithDetail("dir", m.Dir)
		}
		return true, nil
	}

	logger.Info().Str("dir", m.Dir).Msg("Updating upstream clone")
	if err := m.VCS.Pull(ctx, m.Dir); err != nil {
		return false, errors.Wrapf(err, errors.ErrUpstream, "failed to update %s", m.Dir).
			WithDetail("dir", m.Dir)
	}
	return false, nil
}

// Generate deletes outDir and runs the upstream generator to recreate it.
// The generator runs inside the clone and gets outDir as its last argument.
func (m *Mirror) Generate(ctx context.Context, outDir string) error {
	logger := logging.GetLogger("mirror")

	if _, err := m.FS.Stat(outDir); err == nil {
		logger.Debug().Str("dir", outDir).Msg("Removing previous tree")
		if err := m.FS.RemoveAll(outDir); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", outDir).
				WithDetail("path", outDir)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", outDir).
			WithDetail("path", outDir)
	}

	args := append(append([]string{}, m.Generator.Args...), outDir)
	cmd := runner.Command{
		Name:   m.Generator.Command,
		Args:   args,
		Dir:    m.Dir,
		Stream: true,
	}

	if _, err := m.Runner.Run(ctx, cmd); err != nil {
		return errors.Wrapf(err, errors.ErrGenerator, "tree generator failed: %s", cmd.String()).
			WithDetail("dir", m.Dir).
			WithDetail("output", outDir)
	}
	return nil
}

// Head returns the validated commit the clone is checked out at
func (m *Mirror) Head(ctx context.Context) (string, error) {
	commit, err := m.VCS.Head(ctx, m.Dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRevision, "failed to read the revision of %s", m.Dir).
			WithDetail("dir", m.Dir)
	}
	if err := provenance.ValidateCommit(commit); err != nil {
		return "", errors.Wrapf(err, errors.ErrRevision, "unexpected revision %q", commit).
			WithDetail("dir", m.Dir)
	}
	return commit, nil
}

// CommitURL links a commit on the upstream web interface
func (m *Mirror) CommitURL(commit string) string {
	return provenance.CommitURL(m.URL, commit)
}
