package config

import (
	"regexp"
	"strings"
	"time"

	"github.com/arthur-debert/vendorsync/pkg/errors"
)

// Mirror backends
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

// Dependency failure policies
const (
	PolicyWarn = "warn"
	PolicyFail = "fail"
)

// Config is the complete vendorsync configuration
type Config struct {
	Upstream   Upstream   `koanf:"upstream"`
	Manifest   Manifest   `koanf:"manifest"`
	Provenance Provenance `koanf:"provenance"`
	Deps       Deps       `koanf:"deps"`
	Runner     Runner     `koanf:"runner"`
}

// Upstream describes the repository being vendored
type Upstream struct {
	URL       string    `koanf:"url"`
	Branch    string    `koanf:"branch"`
	Backend   string    `koanf:"backend"`
	MirrorDir string    `koanf:"mirror_dir"`
	TreeDir   string    `koanf:"tree_dir"`
	Generator Generator `koanf:"generator"`
}

// Generator is the upstream-provided tool that writes the flattened tree.
// The output directory is appended as its last argument.
type Generator struct {
	Command string   `koanf:"command"`
	Args    []string `koanf:"args"`
}

// Manifest configures the build manifest rewrite
type Manifest struct {
	Path         string   `koanf:"path"`
	StartPattern string   `koanf:"start_pattern"`
	EndPattern   string   `koanf:"end_pattern"`
	Indent       string   `koanf:"indent"`
	Extensions   []string `koanf:"extensions"`
	// Subdirs overrides the scanned directories; empty means every
	// top-level entry of the generated tree.
	Subdirs []string `koanf:"subdirs"`
}

// Provenance configures the commit marker in the documentation file
type Provenance struct {
	Path string `koanf:"path"`
	Tag  string `koanf:"tag"`
}

// Deps configures the dependency installer step
type Deps struct {
	Policy       string        `koanf:"policy"`
	Python       string        `koanf:"python"`
	Requirements []Requirement `koanf:"requirements"`
}

// Requirement pairs an importable module with the package that provides it
type Requirement struct {
	Module  string `koanf:"module"`
	Package string `koanf:"package"`
}

// Runner configures subprocess execution
type Runner struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Validate checks the configuration for values no run could succeed with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.URL) == "" {
		return errors.New(errors.ErrConfigValid, "upstream.url is required")
	}

	switch c.Upstream.Backend {
	case BackendGit, BackendGoGit:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"upstream.backend must be %q or %q, got %q", BackendGit, BackendGoGit, c.Upstream.Backend)
	}

	if c.Upstream.Generator.Command == "" {
		return errors.New(errors.ErrConfigValid, "upstream.generator.command is required")
	}

	switch c.Deps.Policy {
	case PolicyWarn, PolicyFail:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"deps.policy must be %q or %q, got %q", PolicyWarn, PolicyFail, c.Deps.Policy)
	}

	for _, req := range c.Deps.Requirements {
		if req.Module == "" || req.Package == "" {
			return errors.New(errors.ErrConfigValid, "deps.requirements entries need both module and package")
		}
	}

	for key, pattern := range map[string]string{
		"manifest.start_pattern": c.Manifest.StartPattern,
		"manifest.end_pattern":   c.Manifest.EndPattern,
	} {
		if pattern == "" {
			return errors.Newf(errors.ErrConfigValid, "%s is required", key)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "%s is not a valid regular expression", key)
		}
	}

	if len(c.Manifest.Extensions) == 0 {
		return errors.New(errors.ErrConfigValid, "manifest.extensions must not be empty")
	}
	for _, ext := range c.Manifest.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Newf(errors.ErrConfigValid, "manifest extension %q must start with a dot", ext)
		}
	}

	if c.Provenance.Tag == "" {
		return errors.New(errors.ErrConfigValid, "provenance.tag is required")
	}

	if c.Runner.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "runner.timeout must not be negative")
	}

	return nil
}

// ToMap converts the configuration back into the nested map shape of the
// TOML file, for genconfig and structured output.
func (c *Config) ToMap() map[string]interface{} {
	reqs := make([]map[string]interface{}, 0, len(c.Deps.Requirements))
	for _, r := range c.Deps.Requirements {
		reqs = append(reqs, map[string]interface{}{
			"module":  r.Module,
			"package": r.Package,
		})
	}

	return map[string]interface{}{
		"upstream": map[string]interface{}{
			"url":        c.Upstream.URL,
			"branch":     c.Upstream.Branch,
			"backend":    c.Upstream.Backend,
			"mirror_dir": c.Upstream.MirrorDir,
			"tree_dir":   c.Upstream.TreeDir,
			"generator": map[string]interface{}{
				"command": c.Upstream.Generator.Command,
				"args":    nonNil(c.Upstream.Generator.Args),
			},
		},
		"manifest": map[string]interface{}{
			"path":          c.Manifest.Path,
			"start_pattern": c.Manifest.StartPattern,
			"end_pattern":   c.Manifest.EndPattern,
			"indent":        c.Manifest.Indent,
			"extensions":    nonNil(c.Manifest.Extensions),
			"subdirs":       nonNil(c.Manifest.Subdirs),
		},
		"provenance": map[string]interface{}{
			"path": c.Provenance.Path,
			"tag":  c.Provenance.Tag,
		},
		"deps": map[string]interface{}{
			"policy":       c.Deps.Policy,
			"python":       c.Deps.Python,
			"requirements": reqs,
		},
		"runner": map[string]interface{}{
			"timeout": c.Runner.Timeout.String(),
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
