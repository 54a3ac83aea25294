// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full server configuration.
type Config struct {
	Port           string        `env:"PORT"            envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info"`
	LogPretty      bool          `env:"LOG_PRETTY"      envDefault:"false"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	JWTSecret     string        `env:"JWT_SECRET"      envDefault:"dev_secret_change_me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"       envDefault:"720h"`
	CookieName    string        `env:"COOKIE_NAME"     envDefault:"wordle_player"`
	CookieSecure  bool          `env:"COOKIE_SECURE"   envDefault:"false"`
	SessionTTL    time.Duration `env:"SESSION_TTL"     envDefault:"24h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"  envDefault:"10m"`

	WordsAnswersFile string `env:"WORDS_ANSWERS_FILE"`
	WordsAllowedFile string `env:"WORDS_ALLOWED_FILE"`
	WordsDB          string `env:"WORDS_DB"`
	WordsStrict      bool   `env:"WORDS_STRICT"       envDefault:"true"`

	DailySalt        string `env:"DAILY_SALT"         envDefault:"local_dev_salt"`
	AllowFixedAnswer bool   `env:"ALLOW_FIXED_ANSWER" envDefault:"false"`
}

// Load reads an optional .env file and parses the environment into Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the current environment into Config.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 10 * time.Minute
	}
	return cfg, nil
}
