package types

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Postgres schema holding the waste bank tables.
	DatabaseSchema string `envconfig:"DATABASE_SCHEMA" default:"banksampah"`
}
