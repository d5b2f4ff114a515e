// Package config loads the overlay's configuration from a TOML file
// with environment-variable overrides.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/oukeidos/caplet/internal/language"
)

//go:embed sample_config.toml
var sampleConfig string

// Config is the runtime configuration. Every field has a usable default
// so a missing config file is not an error.
type Config struct {
	// Service endpoints.
	IdentityURL string `toml:"identity_url" env:"CAPLET_IDENTITY_URL"`
	DocstoreURL string `toml:"docstore_url" env:"CAPLET_DOCSTORE_URL"`
	GeoipURL    string `toml:"geoip_url" env:"CAPLET_GEOIP_URL"`

	// DefaultLanguage is the final resolution fallback.
	DefaultLanguage string `toml:"default_language" env:"CAPLET_DEFAULT_LANGUAGE"`

	// CountryLanguages maps geolocation country codes to language codes.
	// The built-in table is a starting point; deployments are expected
	// to replace it.
	CountryLanguages map[string]string `toml:"country_languages"`

	LogLevel string `toml:"log_level" env:"CAPLET_LOG_LEVEL"`
}

// DefaultPath returns the config file location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".caplet", "config.toml"), nil
}

// Load reads path (missing file yields defaults), applies environment
// overrides, normalizes and validates.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize trims endpoint URLs and fills empty fields from defaults.
func (c *Config) Normalize() {
	def := Default()
	c.IdentityURL = strings.TrimRight(strings.TrimSpace(c.IdentityURL), "/")
	c.DocstoreURL = strings.TrimRight(strings.TrimSpace(c.DocstoreURL), "/")
	c.GeoipURL = strings.TrimSpace(c.GeoipURL)
	if c.IdentityURL == "" {
		c.IdentityURL = def.IdentityURL
	}
	if c.DocstoreURL == "" {
		c.DocstoreURL = def.DocstoreURL
	}
	if c.GeoipURL == "" {
		c.GeoipURL = def.GeoipURL
	}
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = def.DefaultLanguage
	}
	if len(c.CountryLanguages) == 0 {
		c.CountryLanguages = def.CountryLanguages
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate rejects values the overlay cannot run with.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.IdentityURL, "http://") && !strings.HasPrefix(c.IdentityURL, "https://") {
		return fmt.Errorf("identity_url must be an http(s) URL, got %q", c.IdentityURL)
	}
	if !strings.HasPrefix(c.DocstoreURL, "http://") && !strings.HasPrefix(c.DocstoreURL, "https://") {
		return fmt.Errorf("docstore_url must be an http(s) URL, got %q", c.DocstoreURL)
	}
	if !language.Supported(language.Code(c.DefaultLanguage)) {
		return fmt.Errorf("default_language %q is not a supported language", c.DefaultLanguage)
	}
	for country, code := range c.CountryLanguages {
		if len(country) != 2 {
			return fmt.Errorf("country_languages key %q is not a two-letter country code", country)
		}
		if !language.Supported(language.Code(code)) {
			return fmt.Errorf("country_languages[%s] = %q is not a supported language", country, code)
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

// CountryTable returns the country mapping with typed language codes.
func (c Config) CountryTable() map[string]language.Code {
	table := make(map[string]language.Code, len(c.CountryLanguages))
	for country, code := range c.CountryLanguages {
		table[strings.ToUpper(country)] = language.Code(code)
	}
	return table
}

// Sample returns the annotated sample configuration.
func Sample() string { return sampleConfig }
