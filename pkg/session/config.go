package session

import (
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

// MinSigningKeyLength is the smallest acceptable HMAC key. Anything shorter
// than the hash output weakens HMAC-SHA256 below its design strength.
const MinSigningKeyLength = 32

// Config carries the server-held signing key and the default token
// lifetime.
type Config struct {
	SigningKey string        `env:"SESSION_SIGNING_KEY,required"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"` // 7 days
}

// Validate enforces key-length and lifetime sanity.
func (c Config) Validate() error {
	if c.SigningKey == "" {
		return ErrMissingSigningKey
	}
	if len(c.SigningKey) < MinSigningKeyLength {
		return ErrSigningKeyTooShort
	}
	if c.TTL <= 0 {
		return ErrInvalidTTL
	}
	return nil
}

// LoadConfig reads the session configuration from the environment.
// The environment is parsed once per process.
func LoadConfig() (Config, error) {
	var err error
	once.Do(func() {
		if parseErr := env.Parse(&cfg); parseErr != nil {
			err = parseErr
			return
		}
		err = cfg.Validate()
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
