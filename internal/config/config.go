package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env         string        `yaml:"env" env:"ENV" env-required:"true"`
	FrontendURL string        `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	HTTP        HTTPConfig    `yaml:"http"`
	Session     SessionConfig `yaml:"session"`
	Google      GoogleConfig  `yaml:"google"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type SessionConfig struct {
	SigningKey   string        `yaml:"signing_key" env:"SESSION_SIGNING_KEY" env-required:"true"`
	Issuer       string        `yaml:"issuer" env:"SESSION_ISSUER" env-default:"agua-vida"`
	TTL          time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"24h"`
	CookieName   string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"agua-vida-session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE" env-default:"false"`
}

type GoogleConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID" env-required:"true"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET" env-required:"true"`
	CallbackURL  string `yaml:"callback_url" env:"GOOGLE_CALLBACK_URL" env-default:"http://localhost:8000/auth/google/callback"`
}
