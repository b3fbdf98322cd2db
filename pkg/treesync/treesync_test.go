package treesync

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncTree(env *testutil.TestEnvironment, applier Applier) (Result, error) {
	return Sync(context.Background(), env.FS, Options{
		TreeDir:     env.Path("build/tree"),
		ProjectRoot: env.Root,
		Applier:     applier,
	})
}

func TestSync_ReplacesOnlyGeneratedNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{
		"tensorflow/lite/micro/micro_interpreter.cc": "new interpreter",
		"tensorflow/lite/micro/micro_interpreter.h":  "new header",
		"third_party/flatbuffers/base.h":             "fb",
		"LICENSE":                                    "apache",
	})
	env.WriteTree("", map[string]string{
		"tensorflow/lite/micro/removed_upstream.cc":  "gone",
		"tensorflow/lite/micro/micro_interpreter.cc": "old interpreter",
		"LICENSE":                                    "old license",
		"src/main.cc":                                "project code",
		"CMakeLists.txt":                             "cmake",
	})

	res, err := syncTree(env, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"LICENSE", "tensorflow", "third_party"}, res.Names())
	assert.Equal(t, 4, res.Files)
	assert.True(t, res.Entries[0].Replaced)
	assert.False(t, res.Entries[0].IsDir)
	assert.True(t, res.Entries[1].Replaced)
	assert.True(t, res.Entries[1].IsDir)
	assert.False(t, res.Entries[2].Replaced)

	assert.Equal(t, "new interpreter", env.ReadFile("tensorflow/lite/micro/micro_interpreter.cc"))
	assert.Equal(t, "apache", env.ReadFile("LICENSE"))
	assert.Equal(t, "fb", env.ReadFile("third_party/flatbuffers/base.h"))
	assert.False(t, env.Exists("tensorflow/lite/micro/removed_upstream.cc"), "stale upstream files must be removed")

	// unrelated project files are untouched
	assert.Equal(t, "project code", env.ReadFile("src/main.cc"))
	assert.Equal(t, "cmake", env.ReadFile("CMakeLists.txt"))
	// the generated tree itself is left in place
	assert.True(t, env.Exists("build/tree/LICENSE"))
}

func TestSync_TypeChange(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{
		"signal/window.cc": "w",
		"examples":         "now a file",
	})
	env.WriteTree("", map[string]string{
		"signal":            "was a file",
		"examples/hello.cc": "was a dir",
	})

	_, err := syncTree(env, nil)
	require.NoError(t, err)

	assert.Equal(t, "w", env.ReadFile("signal/window.cc"))
	assert.Equal(t, "now a file", env.ReadFile("examples"))
}

func TestSync_EmptyDirectoriesAreCopied(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{"third_party/empty/": ""})

	res, err := syncTree(env, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Files)
	assert.True(t, env.Exists("third_party/empty"))
}

func TestSync_KeepsPermissions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteFile("build/tree/tools/gen.sh", "#!/bin/sh\n")
	require.NoError(t, os.Chmod(env.Path("build/tree/tools/gen.sh"), 0755))

	_, err := syncTree(env, nil)
	require.NoError(t, err)

	info, err := os.Stat(env.Path("tools/gen.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestSync_MissingTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	_, err := syncTree(env, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestTopLevelNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{
		"tensorflow/a.cc": "",
		"signal/b.cc":     "",
		"LICENSE":         "",
	})

	names, err := TopLevelNames(env.FS, env.Path("build/tree"))
	require.NoError(t, err)
	assert.Equal(t, []string{"LICENSE", "signal", "tensorflow"}, names)
}

func TestNewPlan(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{
		"tensorflow/lite/a.cc": "a",
		"LICENSE":              "l",
	})
	env.WriteTree("", map[string]string{
		"tensorflow/old.cc": "old",
	})

	plan, res, err := NewPlan(env.FS, env.Path("build/tree"), env.Root)
	require.NoError(t, err)

	require.Len(t, plan.Removals, 1)
	assert.Equal(t, env.Path("tensorflow"), plan.Removals[0].Target)
	assert.True(t, plan.Removals[0].Mode.IsDir())

	require.Len(t, plan.Dirs, 2)
	assert.Equal(t, env.Path("tensorflow"), plan.Dirs[0].Target, "parents come first")
	assert.Equal(t, env.Path("tensorflow/lite"), plan.Dirs[1].Target)

	require.Len(t, plan.Copies, 2)
	assert.Equal(t, env.Path("build/tree/LICENSE"), plan.Copies[0].Source)
	assert.Equal(t, env.Path("tensorflow/lite/a.cc"), plan.Copies[1].Target)
	assert.Equal(t, 5, plan.Len())
	assert.Equal(t, 2, res.Files)

	// planning changes nothing
	assert.Equal(t, "old", env.ReadFile("tensorflow/old.cc"))
	assert.False(t, env.Exists("LICENSE"))
}

func TestFSApplier_CanceledContext(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTree("build/tree", map[string]string{"LICENSE": "l"})
	env.WriteFile("LICENSE", "old")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sync(ctx, env.FS, Options{TreeDir: env.Path("build/tree"), ProjectRoot: env.Root})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "old", env.ReadFile("LICENSE"))
}
