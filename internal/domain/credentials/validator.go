// Package credentials classifies configuration values before a client decides
// between a live provider call and its development fallback.
package credentials

import (
	"fmt"
	"net/url"
	"strings"
)

// Classification is the outcome of checking one configuration value.
type Classification int

const (
	Missing Classification = iota
	Placeholder
	InvalidFormat
	Valid
)

func (c Classification) String() string {
	switch c {
	case Missing:
		return "missing"
	case Placeholder:
		return "placeholder"
	case InvalidFormat:
		return "invalid_format"
	case Valid:
		return "valid"
	}
	return "unknown"
}

// IsValid is shorthand for c == Valid.
func (c Classification) IsValid() bool { return c == Valid }

// Label renders the classification the way the health endpoint reports it.
func (c Classification) Label() string {
	switch c {
	case Missing:
		return "❌ Not set"
	case Placeholder:
		return "⚠️ Placeholder value"
	case InvalidFormat:
		return "❌ Invalid format"
	case Valid:
		return "✅ Configured"
	}
	return "❓ Unknown"
}

// Rule describes what a well-formed value looks like.
type Rule struct {
	Name      string
	Prefixes  []string
	MinLength int
	URL       bool
	Hint      string
}

var (
	SupabaseURL = Rule{
		Name:     "SUPABASE_URL",
		Prefixes: []string{"https://", "http://"},
		URL:      true,
		Hint:     "Replace SUPABASE_URL with the actual Supabase project URL (https://<project>.supabase.co)",
	}
	SupabaseServiceRoleKey = Rule{
		Name:      "SUPABASE_SERVICE_ROLE_KEY",
		MinLength: 50,
		Hint:      "Replace SUPABASE_SERVICE_ROLE_KEY with the service role key from the Supabase dashboard",
	}
	DatabaseURL = Rule{
		Name:     "DATABASE_URL",
		Prefixes: []string{"postgres://", "postgresql://"},
		URL:      true,
		Hint:     "Set DATABASE_URL to a postgres:// connection string",
	}
	ResendAPIKey = Rule{
		Name:      "RESEND_API_KEY",
		Prefixes:  []string{"re_"},
		MinLength: 11,
		Hint:      "Replace RESEND_API_KEY with an actual Resend API key (re_...)",
	}
	StripeSecretKey = Rule{
		Name:      "STRIPE_SECRET_KEY",
		Prefixes:  []string{"sk_"},
		MinLength: 20,
		Hint:      "Replace STRIPE_SECRET_KEY with an actual Stripe secret key (sk_live_... or sk_test_...)",
	}
	StripeWebhookSecret = Rule{
		Name:     "STRIPE_WEBHOOK_SECRET",
		Prefixes: []string{"whsec_"},
		Hint:     "Copy the signing secret (whsec_...) of the webhook endpoint from the Stripe dashboard",
	}
	XAIAPIKey = Rule{
		Name:     "XAI_API_KEY",
		Prefixes: []string{"xai-"},
		Hint:     "Set XAI_API_KEY to enable AI report regeneration in the retry sweep",
	}
	AWSRegion = Rule{
		Name:      "AWS_REGION",
		MinLength: 5,
		Hint:      "Set AWS_REGION to the SES region (for example us-east-1)",
	}
)

var placeholders = map[string]struct{}{
	"your_supabase_url":                   {},
	"your-supabase-url":                   {},
	"https://your-project.supabase.co":    {},
	"https://your-project-id.supabase.co": {},
	"supabase_url":                        {},
	"your_supabase_service_role_key":      {},
	"your-supabase-service-role-key":      {},
	"service_role_key":                    {},
	"your_resend_api_key":                 {},
	"your-resend-api-key":                 {},
	"resend_api_key":                      {},
	"your_stripe_secret_key":              {},
	"your-stripe-secret-key":              {},
	"stripe_secret_key":                   {},
	"sk_test_placeholder":                 {},
	"sk_live_placeholder":                 {},
	"your_stripe_webhook_secret":          {},
	"stripe_webhook_secret":               {},
	"your_xai_api_key":                    {},
	"xai_api_key":                         {},
	"your_database_url":                   {},
	"database_url":                        {},
}

// IsPlaceholder reports whether value is a template string copied from an
// example .env instead of a real credential.
func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if _, ok := placeholders[v]; ok {
		return true
	}
	return strings.Contains(v, "your_") || strings.Contains(v, "<your")
}

// Classify checks value against rule.
func Classify(value string, rule Rule) Classification {
	v := strings.TrimSpace(value)
	if v == "" {
		return Missing
	}
	if IsPlaceholder(v) {
		return Placeholder
	}
	if len(rule.Prefixes) > 0 && !hasAnyPrefix(v, rule.Prefixes) {
		return InvalidFormat
	}
	if rule.MinLength > 0 && len(v) < rule.MinLength {
		return InvalidFormat
	}
	if rule.URL {
		u, err := url.Parse(v)
		if err != nil || u.Host == "" {
			return InvalidFormat
		}
	}
	return Valid
}

func hasAnyPrefix(v string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(v, p) {
			return true
		}
	}
	return false
}

// Diagnosis describes the shape of a raw value without revealing it.
type Diagnosis struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Exists         bool   `json:"exists"`
	Length         int    `json:"length"`
	HasValidPrefix bool   `json:"hasValidPrefix"`
	HasWhitespace  bool   `json:"hasWhitespace"`
	HasQuotes      bool   `json:"hasQuotes"`
	Preview        string `json:"preview,omitempty"`
}

// Describe reports the shape of raw. The preview keeps at most the first four
// characters, which covers the provider prefix.
func Describe(raw string, rule Rule) Diagnosis {
	d := Diagnosis{
		Name:          rule.Name,
		Status:        Classify(raw, rule).String(),
		Exists:        raw != "",
		Length:        len(raw),
		HasWhitespace: raw != strings.TrimSpace(raw),
		HasQuotes:     strings.HasPrefix(raw, `"`) || strings.HasPrefix(raw, "'"),
	}
	trimmed := strings.TrimSpace(raw)
	d.HasValidPrefix = len(rule.Prefixes) == 0 || hasAnyPrefix(trimmed, rule.Prefixes)
	if trimmed != "" {
		n := 4
		if len(trimmed) < n {
			n = len(trimmed)
		}
		d.Preview = fmt.Sprintf("%s...", trimmed[:n])
	}
	return d
}
