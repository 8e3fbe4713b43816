package webauthn

import (
	"sync"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

var (
	cfg  Config
	once sync.Once
)

// Config identifies the relying party that authenticator signatures bind
// to. RPID and Origin must match what the browser reports, or every
// verification will fail; production deployments override the localhost
// defaults through the environment.
type Config struct {
	RPID   string `env:"WEBAUTHN_RP_ID" envDefault:"localhost"`
	RPName string `env:"WEBAUTHN_RP_NAME" envDefault:"EterBox Security Vault"`
	Origin string `env:"WEBAUTHN_ORIGIN" envDefault:"http://localhost:3000"`
}

// Validate ensures the relying-party identity is fully specified.
func (c Config) Validate() error {
	if c.RPID == "" {
		return ErrMissingRPID
	}
	if c.RPName == "" {
		return ErrMissingRPName
	}
	if c.Origin == "" {
		return ErrMissingOrigin
	}
	return nil
}

// LoadConfig reads the relying-party configuration from the environment.
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
