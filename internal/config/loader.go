package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables operators already use.
var envBindings = map[string]string{
	"app.name":                   "APP_NAME",
	"app.environment":            "APP_ENV",
	"app.port":                   "PORT",
	"app.base_url":               "APP_BASE_URL",
	"app.log_level":              "LOG_LEVEL",
	"app.log_format":             "LOG_FORMAT",
	"app.allow_origins":          "CORS_ALLOW_ORIGINS",
	"supabase.url":               "SUPABASE_URL",
	"supabase.service_role_key":  "SUPABASE_SERVICE_ROLE_KEY",
	"database.url":               "DATABASE_URL",
	"database.max_idle_conns":    "DATABASE_MAX_IDLE_CONNS",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"database.conn_max_lifetime": "DATABASE_CONN_MAX_LIFETIME",
	"database.auto_migrate":      "DATABASE_AUTO_MIGRATE",
	"email.provider":             "EMAIL_PROVIDER",
	"email.resend_api_key":       "RESEND_API_KEY",
	"email.from":                 "EMAIL_FROM",
	"email.aws_region":           "AWS_REGION",
	"email.ses_from":             "SES_FROM",
	"email.guide_url":            "GUIDE_URL",
	"email.offer_url":            "OFFER_URL",
	"stripe.secret_key":          "STRIPE_SECRET_KEY",
	"stripe.webhook_secret":      "STRIPE_WEBHOOK_SECRET",
	"stripe.success_url":         "STRIPE_SUCCESS_URL",
	"ai.xai_api_key":             "XAI_API_KEY",
	"ai.base_url":                "XAI_BASE_URL",
	"ai.model":                   "XAI_MODEL",
	"ai.max_tokens":              "XAI_MAX_TOKENS",
	"session.redis_url":          "REDIS_URL",
	"session.ttl":                "SESSION_TTL",
	"retry.max_attempts":         "RETRY_MAX_ATTEMPTS",
	"retry.window":               "RETRY_WINDOW",
}

// Load reads .env (when present), an optional config.yaml and the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an existing viper instance, binding the known
// environment variables first.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	trimSecrets(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ai-money-quiz-api"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://localhost:3000"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.App.LogFormat == "" {
		cfg.App.LogFormat = "console"
	}
	if cfg.App.AllowOrigins == "" {
		cfg.App.AllowOrigins = "http://localhost:3000"
	}

	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 50
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "resend"
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "welcome@1appday.com"
	}
	if cfg.Email.SESFrom == "" {
		cfg.Email.SESFrom = cfg.Email.From
	}
	if cfg.Email.GuideURL == "" {
		cfg.Email.GuideURL = "https://oneappnew.netlify.app/OneAppGuide.pdf"
	}
	if cfg.Email.OfferURL == "" {
		cfg.Email.OfferURL = "https://oneappperday.com"
	}

	if cfg.Stripe.SuccessURL == "" {
		cfg.Stripe.SuccessURL = "https://oneappnew.netlify.app/thank-you"
	}

	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.x.ai/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "grok-3"
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 1000
	}

	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 2 * time.Hour
	}

	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.Window == 0 {
		cfg.Retry.Window = 24 * time.Hour
	}
}

// trimSecrets drops the surrounding whitespace that copy-pasted keys tend to carry.
func trimSecrets(cfg *Config) {
	cfg.Supabase.URL = strings.TrimSpace(cfg.Supabase.URL)
	cfg.Supabase.ServiceRoleKey = strings.TrimSpace(cfg.Supabase.ServiceRoleKey)
	cfg.Database.URL = strings.TrimSpace(cfg.Database.URL)
	cfg.Email.ResendAPIKey = strings.TrimSpace(cfg.Email.ResendAPIKey)
	cfg.Stripe.SecretKey = strings.TrimSpace(cfg.Stripe.SecretKey)
	cfg.Stripe.WebhookSecret = strings.TrimSpace(cfg.Stripe.WebhookSecret)
	cfg.AI.XAIAPIKey = strings.TrimSpace(cfg.AI.XAIAPIKey)
}

// Validate rejects settings the service cannot start with. Credentials are not
// checked here: a bad credential switches a component into its fallback instead.
func Validate(cfg *Config) error {
	switch cfg.Email.Provider {
	case "resend", "ses":
	default:
		return fmt.Errorf("unsupported email provider %q", cfg.Email.Provider)
	}
	switch cfg.App.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q", cfg.App.LogFormat)
	}
	if cfg.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be positive, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.Window < 0 {
		return fmt.Errorf("retry window must not be negative")
	}
	return nil
}
