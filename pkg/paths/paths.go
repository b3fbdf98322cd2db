// Package paths provides centralized path handling for vendorsync.
// It resolves the project root and lays out the fixed locations a sync
// run reads and writes relative to it.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/errors"
)

// Environment variable names
const (
	// EnvProjectRoot overrides project root discovery
	EnvProjectRoot = "VENDORSYNC_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default layout names, relative to the project root
const (
	// BuildDir holds the upstream mirror and the generated tree
	BuildDir = "build"

	// DefaultMirrorDir is the version-control clone of the upstream repository
	DefaultMirrorDir = "build/tflite-micro"

	// DefaultTreeDir is where the upstream generator writes the flattened tree
	DefaultTreeDir = "build/tflm-tree"

	// DefaultManifest is the build manifest whose source list is rewritten
	DefaultManifest = "CMakeLists.txt"

	// DefaultReadme holds the provenance marker
	DefaultReadme = "README.md"

	// ConfigFile is the project-level configuration file
	ConfigFile = ".vendorsync.toml"

	// AltConfigFile is accepted when ConfigFile is absent
	AltConfigFile = "vendorsync.toml"
)

// Layout is the set of absolute paths a sync run touches
type Layout struct {
	Root         string `json:"root" yaml:"root"`
	MirrorDir    string `json:"mirror_dir" yaml:"mirror_dir"`
	TreeDir      string `json:"tree_dir" yaml:"tree_dir"`
	ManifestPath string `json:"manifest" yaml:"manifest"`
	ReadmePath   string `json:"readme" yaml:"readme"`
}

// NewLayout resolves the given names against root. Absolute names are kept
// as they are; empty names fall back to the defaults.
func NewLayout(root, mirrorDir, treeDir, manifest, readme string) Layout {
	return Layout{
		Root:         root,
		MirrorDir:    resolve(root, mirrorDir, DefaultMirrorDir),
		TreeDir:      resolve(root, treeDir, DefaultTreeDir),
		ManifestPath: resolve(root, manifest, DefaultManifest),
		ReadmePath:   resolve(root, readme, DefaultReadme),
	}
}

func resolve(root, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(root, filepath.FromSlash(name))
}

// FindProjectRoot determines the project root using the following priority:
// 1. the explicit argument (the --root flag)
// 2. VENDORSYNC_ROOT environment variable
// 3. Git repository root (found via 'git rev-parse --show-toplevel')
// 4. Current working directory (fallback)
//
// The returned bool reports whether the working directory fallback was used.
func FindProjectRoot(explicit string) (string, bool, error) {
	root, usedFallback, err := findRoot(explicit)
	if err != nil {
		return "", false, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for project root")
	}
	return absRoot, usedFallback, nil
}

func findRoot(explicit string) (string, bool, error) {
	if explicit != "" {
		return expandHome(explicit), false, nil
	}

	if root := os.Getenv(EnvProjectRoot); root != "" {
		return expandHome(root), false, nil
	}

	gitRoot, err := findGitRoot()
	if err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}

	return gitRoot, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ConfigPath returns the project configuration file to load, preferring
// ConfigFile over AltConfigFile. It returns "" if neither exists.
func ConfigPath(root string) string {
	for _, name := range []string{ConfigFile, AltConfigFile} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
