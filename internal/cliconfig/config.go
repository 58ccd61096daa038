package cliconfig

import (
	"fmt"
	"os"
	"time"
)

// DefaultServiceURL is the default RIS endpoint.
const DefaultServiceURL = "https://ris.apphash.io"

// Config holds CLI configuration for risq.
type Config struct {
	ServiceURL string

	// Exactly one credential source must end up configured: an API key
	// (inline or file) or a PKCS12 container with its pass phrase.
	APIKey        string
	APIKeyFile    string
	P12File       string
	P12Passphrase string

	HTTPTimeout time.Duration
	LogLevel    string
	Mode        string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL:  DefaultServiceURL,
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "info",
		Mode:        "Q",
		APIKey:      os.Getenv("RISQ_API_KEY"),
	}
}

// Validate checks the configuration for errors and normalizes derived
// values.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}

	// Ensure no trailing slash
	if c.ServiceURL[len(c.ServiceURL)-1] == '/' {
		c.ServiceURL = c.ServiceURL[:len(c.ServiceURL)-1]
	}

	hasKey := c.APIKey != "" || c.APIKeyFile != ""
	hasCert := c.P12File != ""
	switch {
	case !hasKey && !hasCert:
		return fmt.Errorf("credentials required: set api-key, api-key-file, or p12-file")
	case hasKey && hasCert:
		return fmt.Errorf("api-key and p12-file are mutually exclusive")
	case hasCert && c.P12Passphrase == "":
		return fmt.Errorf("p12-passphrase is required with p12-file")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}

	switch c.Mode {
	case "Q", "P", "U", "X":
	default:
		return fmt.Errorf("mode must be one of Q, P, U, X")
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration value if not empty and flag
// not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", flag, err)
	}
	*dst = d
	return nil
}
