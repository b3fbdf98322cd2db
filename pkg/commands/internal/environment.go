package internal

import (
	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/filesystem"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/manifest"
	"github.com/arthur-debert/vendorsync/pkg/mirror"
	"github.com/arthur-debert/vendorsync/pkg/paths"
	"github.com/arthur-debert/vendorsync/pkg/runner"
	"github.com/arthur-debert/vendorsync/pkg/treesync"
	"github.com/arthur-debert/vendorsync/pkg/types"
)

// Options are the inputs shared by every command. Zero values are filled
// in from the project: the root is discovered, the configuration loaded
// from it, and the OS filesystem and exec runner used.
type Options struct {
	// ProjectRoot is the project the vendored tree lives in
	ProjectRoot string

	// ConfigFile is an extra TOML file layered over the project config
	ConfigFile string

	// Overrides are dotted config keys applied over every other source
	Overrides map[string]interface{}

	// Config skips loading when set
	Config *config.Config

	// FileSystem to use (defaults to OS filesystem)
	FileSystem types.FS

	// Runner for subprocesses (defaults to an exec runner)
	Runner runner.Runner

	// VCS overrides the configured upstream backend
	VCS mirror.VCS

	// TreeApplier overrides how the generated tree is copied in. The
	// default is a synthfs pipeline on the OS filesystem and plain FS
	// calls on any other filesystem.
	TreeApplier treesync.Applier
}

// Environment is everything a command needs, resolved once
type Environment struct {
	Config   *config.Config
	Layout   paths.Layout
	FS       types.FS
	Tree     treesync.Applier
	Runner   runner.Runner
	Mirror   *mirror.Mirror
	Manifest manifest.Options
}

// NewEnvironment resolves the options into a ready environment
func NewEnvironment(opts Options) (*Environment, error) {
	logger := logging.GetLogger("commands.internal")

	root, usedFallback, err := paths.FindProjectRoot(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}
	if usedFallback {
		logger.Warn().Str("root", root).Msg("Not inside a git repository, using the current directory as project root")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg, err = config.LoadWithOverrides(root, opts.ConfigFile, opts.Overrides)
		if err != nil {
			return nil, err
		}
	}

	fs := opts.FileSystem
	tree := opts.TreeApplier
	if fs == nil {
		fs = filesystem.NewOS()
		if tree == nil {
			tree = treesync.NewPipelineApplier(fs)
		}
	}
	if tree == nil {
		tree = &treesync.FSApplier{FS: fs}
	}

	r := opts.Runner
	if r == nil {
		r = runner.NewExecRunner(runner.Options{Timeout: cfg.Runner.Timeout})
	}

	vcs := opts.VCS
	if vcs == nil {
		vcs, err = mirror.NewVCS(cfg.Upstream.Backend, r)
		if err != nil {
			return nil, err
		}
	}

	manifestOpts, err := manifest.NewOptions(cfg.Manifest.StartPattern, cfg.Manifest.EndPattern, cfg.Manifest.Indent)
	if err != nil {
		return nil, err
	}

	layout := paths.NewLayout(root, cfg.Upstream.MirrorDir, cfg.Upstream.TreeDir, cfg.Manifest.Path, cfg.Provenance.Path)

	logger.Debug().
		Str("root", layout.Root).
		Str("mirror", layout.MirrorDir).
		Str("tree", layout.TreeDir).
		Str("backend", cfg.Upstream.Backend).
		Msg("Environment resolved")

	return &Environment{
		Config: cfg,
		Layout: layout,
		FS:     fs,
		Tree:   tree,
		Runner: r,
		Mirror: &mirror.Mirror{
			URL:       cfg.Upstream.URL,
			Branch:    cfg.Upstream.Branch,
			Dir:       layout.MirrorDir,
			Generator: cfg.Upstream.Generator,
			VCS:       vcs,
			Runner:    r,
			FS:        fs,
		},
		Manifest: manifestOpts,
	}, nil
}

// Subdirs are the directories scanned for manifest sources: the configured
// override, or every top-level entry of the generated tree.
func (e *Environment) Subdirs() ([]string, error) {
	if len(e.Config.Manifest.Subdirs) > 0 {
		return e.Config.Manifest.Subdirs, nil
	}
	return treesync.TopLevelNames(e.FS, e.Layout.TreeDir)
}

// Sources discovers the manifest sources under the project root
func (e *Environment) Sources() (subdirs, files []string, err error) {
	subdirs, err = e.Subdirs()
	if err != nil {
		return nil, nil, err
	}
	files, err = manifest.Discover(e.FS, e.Layout.Root, subdirs, e.Config.Manifest.Extensions)
	if err != nil {
		return subdirs, nil, err
	}
	return subdirs, files, nil
}
