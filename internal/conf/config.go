package conf

import (
	"github.com/caarlos0/env/v9"
	"github.com/pkg/errors"
)

// LogConfig controls logrus output. When File is empty, logs go to stderr.
type LogConfig struct {
	Level      string `json:"level" env:"LEVEL" envDefault:"info"`
	File       string `json:"file" env:"FILE"`
	MaxSizeMB  int    `json:"max_size_mb" env:"MAX_SIZE" envDefault:"10"`
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `json:"max_age_days" env:"MAX_AGE" envDefault:"28"`
	Compress   bool   `json:"compress" env:"COMPRESS"`
}

// Config is everything the process reads from the environment. The OAuth
// fields come from the authorization flow that produced the refresh token;
// RedirectURI is not used by the token exchange itself but kept alongside the
// other credentials.
type Config struct {
	ClientID     string `json:"client_id" env:"GDRIVE_CLIENT_ID"`
	ClientSecret string `json:"client_secret" env:"GDRIVE_CLIENT_SECRET"`
	RefreshToken string `json:"refresh_token" env:"GDRIVE_REFRESH_TOKEN"`
	RedirectURI  string `json:"redirect_uri" env:"GDRIVE_REDIRECT_URI" envDefault:"urn:ietf:wg:oauth:2.0:oob"`

	// URLConcurrency bounds the per-month display-URL fan-out during listing.
	URLConcurrency int `json:"url_concurrency" env:"RV_URL_CONCURRENCY" envDefault:"4"`

	Log LogConfig `json:"log" envPrefix:"RV_LOG_"`
}

// Load parses the environment into a Config and stores it in Conf.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment config")
	}
	if cfg.URLConcurrency < 1 {
		cfg.URLConcurrency = 1
	}
	Conf = cfg
	return cfg, nil
}
