package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v6"
)

const (
	EmailBackendSES  = "ses"
	EmailBackendSMTP = "smtp"
)

type Config struct {
	IsTestMode  bool `env:"TEST_MODE"`
	Port        int  `env:"PORT" envDefault:"9090"`
	AutoMigrate bool `env:"AUTO_MIGRATE"`

	Secret        string `env:"SECRET,notEmpty"`
	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`

	RabbitmqURL                    string `env:"RABBITMQ_URL"`
	RabbitmqPasswordEventsExchange string `env:"RABBITMQ_PASSWORD_EVENTS_EXCHANGE" envDefault:"password-events"`

	BcryptHasherCost                int     `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationHours int     `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"2"`
	PasswordResetBaseURL            url.URL `env:"PASSWORD_RESET_BASE_URL,notEmpty"`

	EmailBackend string `env:"EMAIL_BACKEND" envDefault:"ses"`
	EmailSender  string `env:"EMAIL_SENDER,notEmpty"`

	AwsRegion    string `env:"AWS_REGION"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey string `env:"AWS_SECRET_KEY"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPTLS      bool   `env:"SMTP_TLS" envDefault:"true"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SentryDsn      *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) IsRabbitmqEnabled() bool {
	return c.RabbitmqURL != ""
}

func (c *Config) validate() error {
	if c.PasswordResetValidDurationHours <= 0 {
		return fmt.Errorf("PASSWORD_RESET_VALID_DURATION_HOURS must be positive")
	}
	switch c.EmailBackend {
	case EmailBackendSES:
		if c.AwsRegion == "" {
			return fmt.Errorf("AWS_REGION must be set for the %s email backend", EmailBackendSES)
		}
	case EmailBackendSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST must be set for the %s email backend", EmailBackendSMTP)
		}
	default:
		return fmt.Errorf("unknown EMAIL_BACKEND value: %q", c.EmailBackend)
	}
	return nil
}
