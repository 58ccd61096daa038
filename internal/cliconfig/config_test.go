package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted a config without credentials")
	}
}

func TestValidateExclusiveCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.P12File = "/etc/ris/cert.p12"
	cfg.P12Passphrase = "phrase"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted both api-key and p12-file")
	}
}

func TestValidateCertNeedsPassphrase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = ""
	cfg.P12File = "/etc/ris/cert.p12"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "p12-passphrase") {
		t.Fatalf("Validate() = %v, want passphrase error", err)
	}
}

func TestValidateStripsTrailingSlash(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.ServiceURL = "https://ris.example.com/"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.ServiceURL != "https://ris.example.com" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
}

func TestValidateMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.Mode = "Z"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() accepted mode Z")
	}
}

func TestApplyFileConfigPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServiceURL = "https://from-flag.example.com"

	fc := FileConfig{
		ServiceURL:  "https://from-file.example.com",
		APIKey:      "file-key",
		HTTPTimeout: "45s",
	}
	changed := map[string]bool{"url": true}

	if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
		t.Fatal(err)
	}
	if cfg.ServiceURL != "https://from-flag.example.com" {
		t.Errorf("ServiceURL = %q, flag value must win", cfg.ServiceURL)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.HTTPTimeout != 45*time.Second {
		t.Errorf("HTTPTimeout = %v, want 45s", cfg.HTTPTimeout)
	}
}

func TestApplyFileConfigBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	fc := FileConfig{HTTPTimeout: "not-a-duration"}
	if err := ApplyFileConfig(&cfg, fc, nil); err == nil {
		t.Fatal("ApplyFileConfig() accepted an invalid duration")
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("RISQ_SERVICE_URL", "https://from-env.example.com")
	t.Setenv("RISQ_API_KEY_FILE", "/run/secrets/ris.key")
	t.Setenv("RISQ_HTTP_TIMEOUT", "90s")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, nil); err != nil {
		t.Fatal(err)
	}
	if cfg.ServiceURL != "https://from-env.example.com" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.APIKeyFile != "/run/secrets/ris.key" {
		t.Errorf("APIKeyFile = %q", cfg.APIKeyFile)
	}
	if cfg.HTTPTimeout != 90*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}
