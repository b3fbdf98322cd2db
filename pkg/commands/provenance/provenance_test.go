package provenance

import (
	"context"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sha = "1111111111222222222233333333334444444444"

func TestProvenance(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("README.md", "intro\ncommit: old\n")
	env.WriteFile("build/tflite-micro/.git/HEAD", "")

	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Upstream.URL = "https://github.com/example/upstream.git"

	opts := internal.Options{
		ProjectRoot: env.Root,
		Config:      cfg,
		FileSystem:  env.FS,
		Runner:      &testutil.MockRunner{},
		VCS:         &testutil.FakeVCS{FS: env.FS, Commit: sha},
	}

	result, err := Provenance(context.Background(), ProvenanceOptions{Options: opts})
	require.NoError(t, err)

	assert.Equal(t, sha, result.Commit)
	assert.Equal(t, "https://github.com/example/upstream/commit/"+sha, result.URL)
	assert.Equal(t, "intro\ncommit: ["+sha+"](https://github.com/example/upstream/commit/"+sha+")\n",
		env.ReadFile("README.md"))
}

func TestProvenance_NoClone(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile("README.md", "commit: old\n")

	cfg, err := config.Default()
	require.NoError(t, err)
	opts := internal.Options{ProjectRoot: env.Root, Config: cfg, FileSystem: env.FS, Runner: &testutil.MockRunner{}}

	_, err = Provenance(context.Background(), ProvenanceOptions{Options: opts})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	result, err := Provenance(context.Background(), ProvenanceOptions{Options: opts, Commit: sha})
	require.NoError(t, err)
	assert.True(t, result.Result.Changed)

	_, err = Provenance(context.Background(), ProvenanceOptions{Options: opts, Commit: "HEAD"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
