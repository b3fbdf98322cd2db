package mirror

import (
	"context"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/runner"
)

// VCS is the version-control capability the mirror needs
type VCS interface {
	// Clone makes a full recursive clone of url into dir, submodules included.
	Clone(ctx context.Context, url, branch, dir string) error
	// Pull fast-forwards the clone at dir.
	Pull(ctx context.Context, dir string) error
	// Head returns the commit the clone at dir is checked out at.
	Head(ctx context.Context, dir string) (string, error)
}

// NewVCS returns the backend named by upstream.backend
func NewVCS(backend string, r runner.Runner) (VCS, error) {
	switch backend {
	case config.BackendGit, "":
		return &GitCLI{Runner: r}, nil
	case config.BackendGoGit:
		return &GoGit{}, nil
	default:
		return nil, errors.Newf(errors.ErrConfigValid, "unknown upstream backend %q", backend).
			WithDetail("backend", backend)
	}
}

// GitCLI drives the git command line client
type GitCLI struct {
	Runner runner.Runner
}

// Clone runs `git clone --recurse-submodules [--branch b] <url> <dir>`
func (g *GitCLI) Clone(ctx context.Context, url, branch, dir string) error {
	args := []string{"clone", "--recurse-submodules"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dir)

	_, err := g.Runner.Run(ctx, runner.Command{Name: "git", Args: args, Stream: true})
	return err
}

// Pull runs `git pull` inside the clone
func (g *GitCLI) Pull(ctx context.Context, dir string) error {
	_, err := g.Runner.Run(ctx, runner.Command{Name: "git", Args: []string{"pull"}, Dir: dir, Stream: true})
	return err
}

// Head runs `git rev-parse HEAD` inside the clone
func (g *GitCLI) Head(ctx context.Context, dir string) (string, error) {
	res, err := g.Runner.Run(ctx, runner.Command{Name: "git", Args: []string{"rev-parse", "HEAD"}, Dir: dir})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
