package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test when no git binary is available
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// Git runs a git command in dir and returns its trimmed output
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		"GIT_CONFIG_NOSYSTEM=1", "HOME="+dir,
	)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(string(out))
}

// InitGitRepo creates a repository at dir with the given files committed
// on branch main, and returns the commit hash.
func InitGitRepo(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	RequireGit(t)

	require.NoError(t, os.MkdirAll(dir, 0755))
	Git(t, dir, "init", "-q")
	Git(t, dir, "checkout", "-q", "-b", "main")
	return CommitFiles(t, dir, "initial", files)
}

// CommitFiles writes files into the repository at dir, commits them and
// returns the new commit hash.
func CommitFiles(t *testing.T, dir, message string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	Git(t, dir, "add", "-A")
	Git(t, dir, "commit", "-q", "-m", message)
	return Git(t, dir, "rev-parse", "HEAD")
}
