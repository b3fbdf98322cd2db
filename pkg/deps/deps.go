package deps

import (
	"context"

	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/runner"
)

// Resolver reports whether a module can be imported
type Resolver interface {
	Resolve(ctx context.Context, module string) error
}

// Installer installs a package into the host environment
type Installer interface {
	Install(ctx context.Context, pkg string) error
}

// PythonResolver probes modules with `<python> -c "import <module>"`
type PythonResolver struct {
	Python string
	Runner runner.Runner
}

// Resolve returns nil when the module imports cleanly
func (r *PythonResolver) Resolve(ctx context.Context, module string) error {
	_, err := r.Runner.Run(ctx, runner.Command{
		Name: r.Python,
		Args: []string{"-c", "import " + module},
	})
	return err
}

// PipInstaller installs packages with `<python> -m pip install <pkg>`
type PipInstaller struct {
	Python string
	Runner runner.Runner
}

// Install runs pip, streaming its output to the console
func (i *PipInstaller) Install(ctx context.Context, pkg string) error {
	_, err := i.Runner.Run(ctx, runner.Command{
		Name:   i.Python,
		Args:   []string{"-m", "pip", "install", pkg},
		Stream: true,
	})
	return err
}

// NoopInstaller never touches the host and always fails, so a missing
// module is reported rather than installed.
type NoopInstaller struct{}

// Install implements Installer
func (NoopInstaller) Install(_ context.Context, pkg string) error {
	return errors.Newf(errors.ErrDependencyInstall, "installation of %s skipped", pkg).
		WithDetail("package", pkg)
}

// Outcome is what happened to one requirement
type Outcome struct {
	Module    string `json:"module" yaml:"module"`
	Package   string `json:"package" yaml:"package"`
	Present   bool   `json:"present" yaml:"present"`
	Installed bool   `json:"installed" yaml:"installed"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the requirement is still missing
func (o Outcome) Failed() bool {
	return !o.Present && !o.Installed
}

// Ensure probes every requirement in order and installs the missing ones.
// Under PolicyWarn a failed install is logged and the remaining
// requirements are still processed; under PolicyFail the first failure
// stops and is returned as ErrDependencyInstall. Outcomes cover every
// requirement processed.
func Ensure(ctx context.Context, resolver Resolver, installer Installer, reqs []config.Requirement, policy string) ([]Outcome, error) {
	logger := logging.GetLogger("deps")
	outcomes := make([]Outcome, 0, len(reqs))

	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		outcome := Outcome{Module: req.Module, Package: req.Package}

		if err := resolver.Resolve(ctx, req.Module); err == nil {
			outcome.Present = true
			logger.Debug().Str("module", req.Module).Msg("Module present")
			outcomes = append(outcomes, outcome)
			continue
		}

		logger.Warn().Str("module", req.Module).Msgf("%s not found. Installing...", req.Module)

		if err := installer.Install(ctx, req.Package); err != nil {
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)

			logger.Error().Err(err).
				Str("module", req.Module).
				Str("package", req.Package).
				Msgf("Failed to install %s.", req.Module)

			if policy == config.PolicyFail {
				return outcomes, errors.Wrapf(err, errors.ErrDependencyInstall,
					"failed to install %s", req.Package).
					WithDetail("module", req.Module).
					WithDetail("package", req.Package)
			}
			continue
		}

		outcome.Installed = true
		outcomes = append(outcomes, outcome)
		logger.Info().Str("module", req.Module).Msgf("%s installed successfully.", req.Module)
	}

	return outcomes, nil
}
