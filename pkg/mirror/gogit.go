package mirror

import (
	"context"
	"io"

	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GoGit implements VCS in-process with go-git
type GoGit struct {
	// Progress receives the remote's sideband output; nil discards it.
	Progress io.Writer
}

// Clone implements VCS
func (g *GoGit) Clone(ctx context.Context, url, branch, dir string) error {
	logger := logging.GetLogger("mirror.gogit")
	logger.Debug().Str("url", url).Str("dir", dir).Msg("Cloning repository")

	opts := &git.CloneOptions{
		URL:               url,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		Progress:          g.Progress,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}

	_, err := git.PlainCloneContext(ctx, dir, false, opts)
	return err
}

// Pull implements VCS. An already up to date clone is not an error.
func (g *GoGit) Pull(ctx context.Context, dir string) error {
	logger := logging.GetLogger("mirror.gogit")

	repo, err := git.PlainOpen(dir)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:        git.DefaultRemoteName,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		Progress:          g.Progress,
	})
	if err == git.NoErrAlreadyUpToDate {
		logger.Info().Str("dir", dir).Msg("Already up to date")
		return nil
	}
	return err
}

// Head implements VCS
func (g *GoGit) Head(_ context.Context, dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", err
	}

	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}
