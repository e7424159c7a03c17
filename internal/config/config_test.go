package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvReaderDefaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("SESSION_SIGNING_KEY", "secret")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "shh")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if cfg.HTTP.Port != "8000" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("FrontendURL = %q", cfg.FrontendURL)
	}
	if cfg.Session.TTL != 24*time.Hour || cfg.Session.CookieName != "agua-vida-session" {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Google.CallbackURL != "http://localhost:8000/auth/google/callback" {
		t.Errorf("CallbackURL = %q", cfg.Google.CallbackURL)
	}
}

func TestEnvReaderRequiresSigningKey(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("SESSION_SIGNING_KEY", "")
	os.Unsetenv("SESSION_SIGNING_KEY")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "shh")

	if _, err := NewEnvReader().Read(); err == nil {
		t.Error("expected an error without SESSION_SIGNING_KEY")
	}
}

func TestFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `env: dev
frontend_url: https://agua.example.com
http:
  port: "9000"
session:
  signing_key: from-file
google:
  client_id: client
  client_secret: shh
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileReader(path).Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if cfg.Env != EnvDev || cfg.HTTP.Port != "9000" || cfg.Session.SigningKey != "from-file" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.FrontendURL != "https://agua.example.com" || cfg.Session.TTL != 24*time.Hour {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, err := NewFileReader(filepath.Join(t.TempDir(), "missing.yaml")).Read(); err == nil {
		t.Error("expected an error for a missing file")
	}
}
