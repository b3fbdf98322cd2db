package deps

import (
	"context"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/deps"
	"github.com/arthur-debert/vendorsync/pkg/logging"
)

// DepsOptions holds options for the deps command
type DepsOptions struct {
	internal.Options

	// SkipInstall reports missing modules without installing them
	SkipInstall bool

	// Resolver and Installer override the python defaults
	Resolver  deps.Resolver
	Installer deps.Installer
}

// DepsResult lists what happened to every requirement
type DepsResult struct {
	Policy   string         `json:"policy" yaml:"policy"`
	Outcomes []deps.Outcome `json:"outcomes" yaml:"outcomes"`
}

// Missing counts requirements that are still not importable
func (r *DepsResult) Missing() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// Deps makes sure the generator's python requirements are installed
func Deps(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	logger := logging.GetLogger("commands.deps")
	done := logging.LogOperationStart(logger, "deps")
	defer done()

	env, err := internal.NewEnvironment(opts.Options)
	if err != nil {
		return nil, err
	}

	return Run(ctx, env, opts.Resolver, opts.Installer, opts.SkipInstall)
}

// Run executes the dependency step against a resolved environment. It is
// shared with the sync pipeline.
func Run(ctx context.Context, env *internal.Environment, resolver deps.Resolver, installer deps.Installer, skipInstall bool) (*DepsResult, error) {
	cfg := env.Config.Deps

	if resolver == nil {
		resolver = &deps.PythonResolver{Python: cfg.Python, Runner: env.Runner}
	}
	switch {
	case skipInstall:
		installer = deps.NoopInstaller{}
	case installer == nil:
		installer = &deps.PipInstaller{Python: cfg.Python, Runner: env.Runner}
	}

	outcomes, err := deps.Ensure(ctx, resolver, installer, cfg.Requirements, cfg.Policy)
	return &DepsResult{Policy: cfg.Policy, Outcomes: outcomes}, err
}
