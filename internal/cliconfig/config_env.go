package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (RISQ_*). It respects flags that have been explicitly set (changed
// map). Returns an error if any environment variable has an invalid
// format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", os.Getenv("RISQ_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("api-key", os.Getenv("RISQ_API_KEY"), &cfg.APIKey)
	s.setString("api-key-file", os.Getenv("RISQ_API_KEY_FILE"), &cfg.APIKeyFile)
	s.setString("p12-file", os.Getenv("RISQ_P12_FILE"), &cfg.P12File)
	s.setString("p12-passphrase", os.Getenv("RISQ_P12_PASSPHRASE"), &cfg.P12Passphrase)
	s.setString("log-level", os.Getenv("RISQ_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("mode", os.Getenv("RISQ_MODE"), &cfg.Mode)

	return s.setDuration("timeout", os.Getenv("RISQ_HTTP_TIMEOUT"), &cfg.HTTPTimeout)
}
