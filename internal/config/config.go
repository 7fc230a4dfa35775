package config

import "time"

// Config holds every setting the service reads at startup. It is built once in main
// and handed to the component constructors.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Database DatabaseConfig `mapstructure:"database"`
	Email    EmailConfig    `mapstructure:"email"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	AI       AIConfig       `mapstructure:"ai"`
	Session  SessionConfig  `mapstructure:"session"`
	Retry    RetryConfig    `mapstructure:"retry"`
}

type AppConfig struct {
	Name         string `mapstructure:"name"`
	Environment  string `mapstructure:"environment"`
	Port         string `mapstructure:"port"`
	BaseURL      string `mapstructure:"base_url"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	AllowOrigins string `mapstructure:"allow_origins"`
}

// IsDevelopment reports whether fallbacks may stand in for live providers.
func (a AppConfig) IsDevelopment() bool {
	switch a.Environment {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

type SupabaseConfig struct {
	URL            string `mapstructure:"url"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type EmailConfig struct {
	Provider     string `mapstructure:"provider"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	AWSRegion    string `mapstructure:"aws_region"`
	SESFrom      string `mapstructure:"ses_from"`
	GuideURL     string `mapstructure:"guide_url"`
	OfferURL     string `mapstructure:"offer_url"`
}

type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
}

type AIConfig struct {
	XAIAPIKey string `mapstructure:"xai_api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type SessionConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Window      time.Duration `mapstructure:"window"`
}
