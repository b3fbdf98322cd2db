package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/filesystem"
	"github.com/arthur-debert/vendorsync/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a project root plus the filesystem it lives on
type TestEnvironment struct {
	Root string
	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Root = "/project"
		env.FS = filesystem.NewMemory()
		require.NoError(t, env.FS.MkdirAll(env.Root, 0755))
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	default:
		t.Fatalf("unknown environment type %d", envType)
	}
	return env
}

// Path resolves a slash-separated path relative to the project root
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.Root, filepath.FromSlash(rel))
}

// WriteFile writes content to a path relative to the root, creating parents
func (e *TestEnvironment) WriteFile(rel, content string) string {
	e.t.Helper()
	path := e.Path(rel)
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, e.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteTree writes every file of the map, keyed by relative path. A key
// ending in "/" creates an empty directory.
func (e *TestEnvironment) WriteTree(base string, files map[string]string) {
	e.t.Helper()
	for rel, content := range files {
		if strings.HasSuffix(rel, "/") {
			require.NoError(e.t, e.FS.MkdirAll(e.Path(filepath.ToSlash(filepath.Join(base, rel))), 0755))
			continue
		}
		e.WriteFile(filepath.ToSlash(filepath.Join(base, rel)), content)
	}
}

// ReadFile returns the content of a path relative to the root
func (e *TestEnvironment) ReadFile(rel string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(e.Path(rel))
	require.NoError(e.t, err)
	return string(data)
}

// Exists reports whether a path relative to the root exists
func (e *TestEnvironment) Exists(rel string) bool {
	_, err := e.FS.Stat(e.Path(rel))
	return err == nil
}

// ListFiles returns every regular file under base as sorted slash paths
// relative to base.
func (e *TestEnvironment) ListFiles(base string) []string {
	e.t.Helper()
	root := e.Path(base)
	var files []string
	err := e.FS.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(e.t, err)
	sort.Strings(files)
	return files
}
