package configs

import "time"

// Meta configures the Graph API client.
type Meta struct {
	AccessToken string        `env:"ACCESS_TOKEN"`
	AdAccountID string        `env:"AD_ACCOUNT_ID"`
	APIVersion  string        `env:"API_VERSION" envDefault:"v23.0"`
	BaseURL     string        `env:"BASE_URL" envDefault:"https://graph.facebook.com"`
	AgencyName  string        `env:"AGENCY_NAME" envDefault:"MarketingAgency"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// LLM configures the OpenAI compatible chat-completions endpoint.
type LLM struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Model   string        `env:"MODEL" envDefault:"anthropic/claude-3-haiku"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
