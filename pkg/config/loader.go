package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/errors"
	"github.com/arthur-debert/vendorsync/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	toml2 "github.com/pelletier/go-toml/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

// defaultsProvider feeds the embedded defaults to koanf
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) { return defaultConfig, nil }

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "defaults provider only supports ReadBytes")
}

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates nesting levels: VENDORSYNC_UPSTREAM__URL sets upstream.url.
const EnvPrefix = "VENDORSYNC_"

// Default returns the embedded defaults without any project overrides
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Load builds the configuration for the project at root:
// 1. embedded defaults
// 2. .vendorsync.toml (or vendorsync.toml) at the project root
// 3. the extra file, if given
// 4. VENDORSYNC_ environment variables
func Load(root, extraFile string) (*Config, error) {
	return LoadWithOverrides(root, extraFile, nil)
}

// LoadWithOverrides is Load with a last layer of dotted keys, as set by
// command line flags (e.g. "upstream.branch").
func LoadWithOverrides(root, extraFile string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if projectFile := paths.ConfigPath(root); projectFile != "" {
		if err := k.Load(file.Provider(projectFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load project config from %s", projectFile).
				WithDetail("path", projectFile)
		}
	}

	if extraFile != "" {
		if _, err := os.Stat(extraFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", extraFile).
				WithDetail("path", extraFile)
		}
		if err := k.Load(file.Provider(extraFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load config from %s", extraFile).
				WithDetail("path", extraFile)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Marshal renders the configuration as TOML, in the same shape Load reads
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml2.Marshal(cfg.ToMap())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return data, nil
}
