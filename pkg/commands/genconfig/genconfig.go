package genconfig

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/vendorsync/pkg/commands/internal"
	"github.com/arthur-debert/vendorsync/pkg/config"
	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/logging"
	"github.com/arthur-debert/vendorsync/pkg/paths"
)

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	internal.Options

	// Defaults prints the embedded defaults instead of the effective config
	Defaults bool

	// Write saves the output as the project config file
	Write bool
}

// GenConfigResult carries the generated configuration
type GenConfigResult struct {
	ConfigContent string `json:"content" yaml:"content"`
	FileWritten   string `json:"file_written,omitempty" yaml:"file_written,omitempty"`
}

// GenConfig outputs or writes the configuration
func GenConfig(_ context.Context, opts GenConfigOptions) (*GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	var content string
	var env *internal.Environment
	var err error

	if opts.Defaults && !opts.Write {
		content = config.DefaultContent()
	} else {
		env, err = internal.NewEnvironment(opts.Options)
		if err != nil {
			return nil, err
		}
		if opts.Defaults {
			content = config.DefaultContent()
		} else {
			data, err := config.Marshal(env.Config)
			if err != nil {
				return nil, err
			}
			content = string(data)
		}
	}

	result := &GenConfigResult{ConfigContent: content}
	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	target := filepath.Join(env.Layout.Root, paths.ConfigFile)
	if _, err := env.FS.Stat(target); err == nil {
		return result, errors.Newf(errors.ErrInvalidInput, "config file %s already exists", target).
			WithDetail("path", target)
	}

	if err := env.FS.WriteFile(target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", target).
			WithDetail("path", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FileWritten = target
	return result, nil
}
