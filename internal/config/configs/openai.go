package configs

// OpenAI configures the completion provider client. API keys may also arrive
// per request; the key here is the environment-level fallback.
type OpenAI struct {
	// BaseURL overrides the provider endpoint, e.g. for an OpenAI-compatible
	// gateway. Empty uses the SDK default.
	BaseURL string `env:"BASE_URL"`
	// APIKey is the server-level credential used when a request carries none.
	APIKey string `env:"API_KEY"`
	// Model is the default model for requests that do not name one.
	Model string `env:"MODEL" envDefault:"gpt-4o"`
	// MaxTokens is the default completion token budget.
	MaxTokens int `env:"MAX_TOKENS" envDefault:"4096"`
	// Temperature is applied to chat families that support sampling
	// overrides; reasoning families run at their fixed default.
	Temperature float64 `env:"TEMPERATURE" envDefault:"0.7"`
	// RequestsPerMinute throttles outbound completion calls across the whole
	// process. Zero disables the limiter.
	RequestsPerMinute int `env:"REQUESTS_PER_MINUTE" envDefault:"0"`
}
