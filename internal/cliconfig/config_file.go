package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML
// friendly.
type FileConfig struct {
	ServiceURL    string `toml:"service_url"`
	APIKey        string `toml:"api_key"`
	APIKeyFile    string `toml:"api_key_file"`
	P12File       string `toml:"p12_file"`
	P12Passphrase string `toml:"p12_passphrase"`
	HTTPTimeout   string `toml:"http_timeout"`
	LogLevel      string `toml:"log_level"`
	Mode          string `toml:"mode"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.risq/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".risq", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config
// struct. It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.ServiceURL, &cfg.ServiceURL)
	s.setString("api-key", fc.APIKey, &cfg.APIKey)
	s.setString("api-key-file", fc.APIKeyFile, &cfg.APIKeyFile)
	s.setString("p12-file", fc.P12File, &cfg.P12File)
	s.setString("p12-passphrase", fc.P12Passphrase, &cfg.P12Passphrase)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("mode", fc.Mode, &cfg.Mode)

	return s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
