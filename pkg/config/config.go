// pkg/config/config.go

// Package config loads inq's settings from flags, the environment, a .env
// file and a YAML config file, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/inq/pkg/inqerr"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/lineedit"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/inq/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable inq reads, e.g.
// INQ_MAX_ATTEMPTS.
const EnvPrefix = "INQ"

// Keys
const (
	KeyStyle       = "style"
	KeyPromptOnce  = "prompt_once"
	KeyMask        = "mask"
	KeyMaxAttempts = "max_attempts"
	KeyLogLevel    = "log_level"
	KeyLogPath     = "log_path"
	KeyColor       = "color"
	KeyTelemetry   = "telemetry"
)

// Config holds the settings shared by every inq command.
type Config struct {
	Style       string `mapstructure:"style" validate:"required"`
	PromptOnce  bool   `mapstructure:"prompt_once"`
	Mask        string `mapstructure:"mask" validate:"len=1,printascii"`
	MaxAttempts int    `mapstructure:"max_attempts" validate:"gte=0"`
	LogLevel    string `mapstructure:"log_level"`
	LogPath     string `mapstructure:"log_path"`
	Color       bool   `mapstructure:"color"`
	Telemetry   bool   `mapstructure:"telemetry"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Style:    lineedit.Basic.String(),
		Mask:     string(lineedit.DefaultMask),
		LogLevel: "info",
	}
}

// LoadOptions points Load at optional files.
type LoadOptions struct {
	// ConfigFile overrides the XDG config location. A missing override is
	// an error; a missing default file is not.
	ConfigFile string
	// DotEnv is a .env file to read into the environment. Variables already
	// set are kept. A missing file is ignored.
	DotEnv string
}

// DefaultConfigFile is $XDG_CONFIG_HOME/inq/config.yaml.
func DefaultConfigFile() string {
	return xdg.ConfigPath(logger.AppName, "config.yaml")
}

// NewViper returns a viper instance with inq's defaults and environment
// binding.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyStyle, d.Style)
	v.SetDefault(KeyPromptOnce, d.PromptOnce)
	v.SetDefault(KeyMask, d.Mask)
	v.SetDefault(KeyMaxAttempts, d.MaxAttempts)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogPath, d.LogPath)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyTelemetry, d.Telemetry)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// FlagName is the command-line spelling of a config key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// BindFlags binds every config key that has a matching flag in flags.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var result *multierror.Error
	for _, key := range []string{
		KeyStyle, KeyPromptOnce, KeyMask, KeyMaxAttempts,
		KeyLogLevel, KeyLogPath, KeyColor, KeyTelemetry,
	} {
		f := flags.Lookup(FlagName(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, cerr.Wrapf(err, "bind flag --%s", f.Name))
		}
	}
	return result.ErrorOrNil()
}

// Load reads the optional .env and config files into v and returns the
// validated settings.
func Load(v *viper.Viper, opts LoadOptions) (Config, error) {
	if err := loadDotEnv(opts.DotEnv); err != nil {
		return Config{}, err
	}
	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, inqerr.NewConfigError("cannot decode settings", err,
			"Check value types in the config file and INQ_* variables")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return inqerr.NewConfigError("cannot read "+path, err,
			"Lines must have the form KEY=value")
	}
	return nil
}

func readConfigFile(v *viper.Viper, explicit string) error {
	path := explicit
	if path == "" {
		path = DefaultConfigFile()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext := filepath.Ext(path); ext == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return inqerr.NewConfigError("cannot read config file "+path, err,
			"Fix the YAML syntax or pass a different file with --config")
	}
	return nil
}

// Validate checks field constraints and that Style and LogLevel name known
// values.
func (c Config) Validate() error {
	var result *multierror.Error

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if cerr.As(err, &verrs) {
			for _, fe := range verrs {
				result = multierror.Append(result, cerr.Newf("%s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
		} else {
			result = multierror.Append(result, err)
		}
	}
	if _, err := lineedit.ParseStyle(c.Style); err != nil && c.Style != "" {
		result = multierror.Append(result, err)
	}
	if !logger.ValidLevel(c.LogLevel) {
		result = multierror.Append(result, cerr.Newf("unknown log level %q", c.LogLevel))
	}

	if err := result.ErrorOrNil(); err != nil {
		return inqerr.NewConfigError("invalid settings", err,
			"Run 'inq --help' for accepted values")
	}
	return nil
}

// StyleValue returns the parsed Style. Call after Validate.
func (c Config) StyleValue() lineedit.Style {
	s, err := lineedit.ParseStyle(c.Style)
	if err != nil {
		return lineedit.Basic
	}
	return s
}

// MaskByte returns the mask glyph. Call after Validate.
func (c Config) MaskByte() byte {
	if len(c.Mask) != 1 {
		return lineedit.DefaultMask
	}
	return c.Mask[0]
}

// LoggerConfig returns the logger settings.
func (c Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Path: c.LogPath}
}
