package testutil

import (
	"context"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnvironment(t *testing.T) {
	for _, envType := range []EnvType{EnvMemoryOnly, EnvIsolated} {
		env := NewTestEnvironment(t, envType)
		env.WriteTree("tree", map[string]string{
			"a/b.cc": "b",
			"a/c.h":  "c",
			"top.c":  "top",
			"empty/": "",
		})

		assert.Equal(t, []string{"a/b.cc", "a/c.h", "top.c"}, env.ListFiles("tree"))
		assert.Equal(t, "top", env.ReadFile("tree/top.c"))
		assert.True(t, env.Exists("tree/empty"))
		assert.False(t, env.Exists("tree/missing"))
	}
}

func TestMockRunner(t *testing.T) {
	m := &MockRunner{
		RunFunc: func(ctx context.Context, cmd runner.Command) (runner.Result, error) {
			return runner.Result{Stdout: "ok"}, nil
		},
	}

	res, err := m.Run(context.Background(), runner.Command{Name: "git", Args: []string{"pull"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Stdout)
	assert.Equal(t, []string{"git pull"}, m.CommandLines())
}
