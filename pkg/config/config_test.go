package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://github.com/tensorflow/tflite-micro", cfg.Upstream.URL)
	assert.Equal(t, BackendGit, cfg.Upstream.Backend)
	assert.Equal(t, "build/tflite-micro", cfg.Upstream.MirrorDir)
	assert.Equal(t, "build/tflm-tree", cfg.Upstream.TreeDir)
	assert.Equal(t, "python3", cfg.Upstream.Generator.Command)
	assert.Equal(t, []string{"tensorflow/lite/micro/tools/project_generation/create_tflm_tree.py"}, cfg.Upstream.Generator.Args)

	assert.Equal(t, `^add_library\(\$\{PROJECT_NAME\}`, cfg.Manifest.StartPattern)
	assert.Equal(t, `^\)`, cfg.Manifest.EndPattern)
	assert.Equal(t, "    ", cfg.Manifest.Indent)
	assert.Equal(t, []string{".c", ".cc", ".cxx", ".cpp"}, cfg.Manifest.Extensions)
	assert.Empty(t, cfg.Manifest.Subdirs)

	assert.Equal(t, "commit:", cfg.Provenance.Tag)
	assert.Equal(t, PolicyWarn, cfg.Deps.Policy)
	assert.Equal(t, []Requirement{
		{Module: "numpy", Package: "numpy"},
		{Module: "PIL", Package: "pillow"},
	}, cfg.Deps.Requirements)
	assert.Equal(t, time.Duration(0), cfg.Runner.Timeout)
}

func TestLoad_ProjectFileOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".vendorsync.toml"), []byte(`
[upstream]
url = "https://example.com/vendor/lib.git"
backend = "go-git"

[manifest]
subdirs = ["tensorflow", "third_party"]

[deps]
policy = "fail"
requirements = []

[runner]
timeout = "10m"
`), 0644))

	cfg, err := Load(root, "")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/vendor/lib.git", cfg.Upstream.URL)
	assert.Equal(t, BackendGoGit, cfg.Upstream.Backend)
	assert.Equal(t, []string{"tensorflow", "third_party"}, cfg.Manifest.Subdirs)
	assert.Equal(t, PolicyFail, cfg.Deps.Policy)
	assert.Empty(t, cfg.Deps.Requirements)
	assert.Equal(t, 10*time.Minute, cfg.Runner.Timeout)
	// untouched keys keep their defaults
	assert.Equal(t, "commit:", cfg.Provenance.Tag)
}

func TestLoad_AltConfigFileName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "vendorsync.toml"), []byte(`
[provenance]
tag = "upstream:"
`), 0644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "upstream:", cfg.Provenance.Tag)
}

func TestLoad_ExtraFileAndEnv(t *testing.T) {
	root := t.TempDir()
	extra := filepath.Join(t.TempDir(), "ci.toml")
	require.NoError(t, os.WriteFile(extra, []byte(`
[manifest]
indent = "\t"
`), 0644))

	t.Setenv("VENDORSYNC_UPSTREAM__BRANCH", "release")
	t.Setenv("VENDORSYNC_MANIFEST__EXTENSIONS", ".c,.cpp")

	cfg, err := Load(root, extra)
	require.NoError(t, err)

	assert.Equal(t, "\t", cfg.Manifest.Indent)
	assert.Equal(t, "release", cfg.Upstream.Branch)
	assert.Equal(t, []string{".c", ".cpp"}, cfg.Manifest.Extensions)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("VENDORSYNC_UPSTREAM__BRANCH", "release")

	cfg, err := LoadWithOverrides(t.TempDir(), "", map[string]interface{}{
		"upstream.branch":  "main",
		"upstream.backend": BackendGoGit,
	})
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Upstream.Branch)
	assert.Equal(t, BackendGoGit, cfg.Upstream.Backend)

	_, err = LoadWithOverrides(t.TempDir(), "", map[string]interface{}{"upstream.backend": "svn"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoad_MissingExtraFile(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidTOML(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".vendorsync.toml"), []byte("[upstream\nurl = "), 0644))

	_, err := Load(root, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Upstream.URL = " " }},
		{"unknown backend", func(c *Config) { c.Upstream.Backend = "hg" }},
		{"missing generator", func(c *Config) { c.Upstream.Generator.Command = "" }},
		{"unknown policy", func(c *Config) { c.Deps.Policy = "ignore" }},
		{"half requirement", func(c *Config) { c.Deps.Requirements = []Requirement{{Module: "numpy"}} }},
		{"bad start pattern", func(c *Config) { c.Manifest.StartPattern = "add_library(" }},
		{"empty end pattern", func(c *Config) { c.Manifest.EndPattern = "" }},
		{"no extensions", func(c *Config) { c.Manifest.Extensions = nil }},
		{"extension without dot", func(c *Config) { c.Manifest.Extensions = []string{"cpp"} }},
		{"empty tag", func(c *Config) { c.Provenance.Tag = "" }},
		{"negative timeout", func(c *Config) { c.Runner.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Default()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		})
	}
}

func TestMarshalLoadsBack(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Upstream.Backend = BackendGoGit
	cfg.Manifest.Subdirs = []string{"signal", "tensorflow"}
	cfg.Runner.Timeout = 90 * time.Second

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[upstream]")

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".vendorsync.toml"), data, 0644))

	loaded, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
