// Package config reads invocation inputs, either from GitHub Actions input
// variables or from a YAML file for local runs, and validates them before
// any network call happens.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-githubactions"
	"gopkg.in/yaml.v3"
)

// Config captures all runtime options for one invocation.
type Config struct {
	// DatabaseName is the target database identifier. Required.
	DatabaseName string `yaml:"database_name"`
	Description  string `yaml:"description"`
	LocationURI  string `yaml:"location_uri"`
	// ParametersJSON is the raw JSON-encoded parameters object; Parameters
	// holds the decoded map after normalization.
	ParametersJSON string            `yaml:"parameters"`
	Parameters     map[string]string `yaml:"-"`
	// CatalogID selects a non-default catalog scope. Empty means the
	// caller's own account.
	CatalogID string `yaml:"catalog_id"`
	// IfNotExists tolerates a pre-existing database. Defaults to true.
	IfNotExists bool `yaml:"if_not_exists"`
	// MaxAttempts and PollDelayMs bound the post-create visibility poll.
	MaxAttempts int `yaml:"max_attempts"`
	PollDelayMs int `yaml:"poll_delay_ms"`
	AWS         AWS `yaml:"aws"`
}

// AWS holds optional client overrides. Empty values defer to the ambient
// AWS environment and credential chain.
type AWS struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

func defaultConfig() Config {
	return Config{
		IfNotExists: true,
		MaxAttempts: 10,
		PollDelayMs: 1000,
	}
}

// FromAction builds a Config from GitHub Actions inputs.
func FromAction(a *githubactions.Action) (Config, error) {
	cfg := defaultConfig()
	cfg.DatabaseName = a.GetInput("database-name")
	cfg.Description = a.GetInput("description")
	cfg.LocationURI = a.GetInput("location-uri")
	cfg.ParametersJSON = a.GetInput("parameters")
	cfg.CatalogID = a.GetInput("catalog-id")
	// Anything other than the literal "false" keeps tolerance enabled.
	cfg.IfNotExists = a.GetInput("if-not-exists") != "false"
	if raw := a.GetInput("max-attempts"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse max-attempts")
		}
		cfg.MaxAttempts = n
	}
	if raw := a.GetInput("poll-delay-ms"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse poll-delay-ms")
		}
		cfg.PollDelayMs = n
	}
	cfg.AWS.Region = a.GetInput("region")
	cfg.AWS.Endpoint = a.GetInput("endpoint")
	cfg.AWS.AccessKeyID = a.GetInput("access-key-id")
	cfg.AWS.SecretAccessKey = a.GetInput("secret-access-key")
	cfg.AWS.SessionToken = a.GetInput("session-token")
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a Config from a YAML file, for runs outside a workflow.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func normalize(cfg *Config) error {
	cfg.DatabaseName = strings.TrimSpace(cfg.DatabaseName)
	if cfg.DatabaseName == "" {
		return errors.New("database-name is required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.PollDelayMs <= 0 {
		cfg.PollDelayMs = 1000
	}
	params, err := parseParameters(cfg.ParametersJSON)
	if err != nil {
		return err
	}
	cfg.Parameters = params
	return nil
}

// parseParameters decodes the parameters input, which must be a flat JSON
// object of string keys to string values. Arrays, scalars and non-string
// values are rejected here, before any network call.
func parseParameters(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var params map[string]string
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, errors.Wrap(err, "parse parameters")
	}
	if params == nil {
		return nil, errors.New("parse parameters: expected a JSON object")
	}
	return params, nil
}
