package testutil

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/runner"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// FakeVCS stands in for an upstream clone on a test filesystem. Clone
// creates dir and writes Files into it; Head returns Commit.
type FakeVCS struct {
	FS     types.FS
	Commit string
	Files  map[string]string

	CloneErr error
	PullErr  error

	Clones int
	Pulls  int
}

// Clone implements mirror.VCS
func (f *FakeVCS) Clone(_ context.Context, _, _, dir string) error {
	if f.CloneErr != nil {
		return f.CloneErr
	}
	f.Clones++
	if err := f.FS.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeFiles(f.FS, dir, f.Files)
}

// Pull implements mirror.VCS
func (f *FakeVCS) Pull(_ context.Context, _ string) error {
	if f.PullErr != nil {
		return f.PullErr
	}
	f.Pulls++
	return nil
}

// Head implements mirror.VCS
func (f *FakeVCS) Head(_ context.Context, _ string) (string, error) {
	return f.Commit, nil
}

// NewGeneratorRunner returns a MockRunner that behaves like a host where
// every python module imports, and where running the tree generator writes
// tree into the output directory given as the generator's last argument.
func NewGeneratorRunner(fs types.FS, tree map[string]string) *MockRunner {
	return &MockRunner{
		RunFunc: func(_ context.Context, cmd runner.Command) (runner.Result, error) {
			if len(cmd.Args) > 0 && (cmd.Args[0] == "-c" || cmd.Args[0] == "-m") {
				return runner.Result{}, nil
			}
			if len(cmd.Args) == 0 {
				return runner.Result{}, nil
			}
			out := cmd.Args[len(cmd.Args)-1]
			if err := fs.MkdirAll(out, 0755); err != nil {
				return runner.Result{}, err
			}
			return runner.Result{}, writeFiles(fs, out, tree)
		},
	}
}

func writeFiles(fs types.FS, base string, files map[string]string) error {
	for rel, content := range files {
		path := filepath.Join(base, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := fs.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
