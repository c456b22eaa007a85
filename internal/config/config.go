package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"adforge/internal/config/configs"
)

// Config is the root of all runtime configuration. Every field is populated
// from environment variables by caarlos0/env; each nested section carries an
// envPrefix tag so its variables share a common prefix. Defaults live on the
// individual types in the configs package. Construct it with Load.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is not
	// currently used by the application but may be useful for logging or
	// metrics.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// OpenAI configures the completion provider. Environment variables
	// prefixed with OPENAI_ will populate this struct.
	OpenAI configs.OpenAI `envPrefix:"OPENAI_"`
}

// Load reads configuration from environment variables into a Config. A .env
// file in the working directory is loaded first when present, so local runs
// do not need exported variables. If parsing fails, an error is returned.
// All fields are loaded with their specified defaults when no environment
// variable is provided.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
