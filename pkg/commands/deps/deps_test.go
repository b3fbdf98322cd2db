package deps

import (
	"context"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/runner"
	"github.com/arthur-debert/vendorsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeps(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cfg, err := config.Default()
	require.NoError(t, err)

	r := &testutil.MockRunner{
		RunFunc: func(ctx context.Context, cmd runner.Command) (runner.Result, error) {
			if cmd.Args[0] == "-c" && cmd.Args[1] == "import PIL" {
				return runner.Result{ExitCode: 1}, errors.New(errors.ErrCommandExecute, "ModuleNotFoundError")
			}
			return runner.Result{}, nil
		},
	}
	opts := DepsOptions{Options: internal.Options{ProjectRoot: env.Root, Config: cfg, FileSystem: env.FS, Runner: r}}

	result, err := Deps(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.PolicyWarn, result.Policy)
	assert.Zero(t, result.Missing())
	assert.True(t, result.Outcomes[1].Installed)
	assert.Equal(t, []string{
		"python3 -c import numpy",
		"python3 -c import PIL",
		"python3 -m pip install pillow",
	}, r.CommandLines())
}

func TestDeps_SkipInstall(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	cfg, err := config.Default()
	require.NoError(t, err)

	r := &testutil.MockRunner{
		RunFunc: func(ctx context.Context, cmd runner.Command) (runner.Result, error) {
			return runner.Result{ExitCode: 1}, errors.New(errors.ErrCommandExecute, "ModuleNotFoundError")
		},
	}
	opts := DepsOptions{
		Options:     internal.Options{ProjectRoot: env.Root, Config: cfg, FileSystem: env.FS, Runner: r},
		SkipInstall: true,
	}

	result, err := Deps(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Missing())
	assert.Len(t, r.Calls(), 2, "nothing installed")
}
