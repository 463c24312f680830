package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/byte4ever/ghub/transport"
)

// DotEnvFile is loaded from the working directory when
// present.
const DotEnvFile = ".env"

// EnvPrefix prefixes the environment variables read by
// Load: GITHUB_TOKEN, GITHUB_ENTERPRISE_HOST.
const EnvPrefix = "github"

// ErrMissingToken is returned when no source provides
// a token.
var ErrMissingToken = errors.New("github token must be set")

// Config holds what a CLI needs to build a ghub.Client.
type Config struct {
	// Token is a personal access token.
	Token string `yaml:"token" envconfig:"TOKEN"`
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname. Leave empty for github.com.
	EnterpriseHost string `yaml:"enterprise_host" envconfig:"ENTERPRISE_HOST"`
}

// Load resolves a Config from DotEnvFile, the YAML file
// at path (skipped when path is empty) and the
// environment. Empty environment variables do not
// override values from the file.
func Load(path string) (Config, error) {
	return LoadFrom(DotEnvFile, path)
}

// LoadFrom is Load with an explicit .env location.
// A missing .env file is not an error; a missing YAML
// file is.
func LoadFrom(dotEnv string, path string) (Config, error) {
	const errCtx = "loading ghub config"

	var cfg Config

	if dotEnv != "" {
		err := godotenv.Load(dotEnv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf(
				"%s: %s: %w", errCtx, dotEnv, err,
			)
		}
	}

	if path != "" {
		content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
		if err != nil {
			return Config{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		if err := yaml.UnmarshalWithOptions(
			content, &cfg, yaml.DisallowUnknownField(),
		); err != nil {
			return Config{}, fmt.Errorf(
				"%s: %s: %w", errCtx, path, err,
			)
		}
	}

	var env Config
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Config{}, fmt.Errorf(
			"%s: environment: %w", errCtx, err,
		)
	}

	cfg.overlay(env)

	if cfg.Token == "" {
		return Config{}, fmt.Errorf(
			"%s: %w", errCtx, ErrMissingToken,
		)
	}

	slog.Debug(
		"loaded ghub config",
		"file", path,
		"enterprise_host", cfg.EnterpriseHost,
	)

	return cfg, nil
}

// overlay copies the non-empty fields of src onto c.
// An exported but empty GITHUB_TOKEN leaves the file
// value in place.
func (c *Config) overlay(src Config) {
	if src.Token != "" {
		c.Token = src.Token
	}

	if src.EnterpriseHost != "" {
		c.EnterpriseHost = src.EnterpriseHost
	}
}

// TransportOptions maps the config onto transport
// options.
func (c Config) TransportOptions() []transport.Option {
	if c.EnterpriseHost == "" {
		return nil
	}

	return []transport.Option{
		transport.WithEnterpriseHost(c.EnterpriseHost),
	}
}
