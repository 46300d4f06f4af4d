package config

import (
	"os"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override settings
const EnvPrefix = "GREATNESS_"

// envSkip lists GREATNESS_ variables that are not settings
var envSkip = map[string]bool{
	"GREATNESS_DIR": true,
}

// Load builds the configuration for the greatness directory at root.
// configPath may be empty, in which case only defaults, environment and
// overrides apply. overrides use dotted keys such as "install.mode".
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default config")
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
					WithDetail("path", configPath)
			}
			logger.Debug().Str("path", configPath).Msg("Loaded config file")
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config %s", configPath).
				WithDetail("path", configPath)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if envSkip[s] {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment config")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

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
	cfg.raw = k.Raw()

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if _, err := cfg.InstallMode(); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid install.mode")
	}
	if _, err := cfg.OverwritePolicy(); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid install.overwrite")
	}
	if strings.TrimSpace(cfg.Pull.DefaultHost) == "" {
		return errors.New(errors.ErrConfigParse, "pull.default_host must not be empty")
	}
	if cfg.Scripts.Timeout < 0 {
		return errors.New(errors.ErrConfigParse, "scripts.timeout must not be negative")
	}
	return nil
}
