package usecases

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/apperrors"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/payment"
)

const (
	StatusAvailable      = "✅ Available"
	StatusEmailDev       = "⚠️ Development mode (console logging)"
	StatusPaymentsDev    = "⚠️ Development mode"
	StatusDBValid        = "✅ Valid configuration"
	StatusDBPlaceholder  = "⚠️ Placeholder values detected"
	StatusDBInvalidURL   = "❌ Invalid URL format"
	StatusDBNotSet       = "❌ Not configured"
	StatusAIUnavailable  = "⚠️ Not configured (built-in reports only)"
	MsgStripeProbeFailed = "Stripe connection failed"
)

// IStripeProber checks the payment credentials against the provider.
type IStripeProber interface {
	Ping(ctx context.Context) (*payment.ProbeResult, error)
}

// EnvLookup reads a raw environment value. os.LookupEnv satisfies it.
type EnvLookup func(key string) (string, bool)

// HealthServices summarizes which providers are live.
type HealthServices struct {
	Database    string `json:"database"`
	Persistence string `json:"persistence"`
	Email       string `json:"email"`
	Payments    string `json:"payments"`
	AI          string `json:"ai"`
}

// HealthInstructions tells operators how to fix what is not live.
type HealthInstructions struct {
	Database *string `json:"database"`
	Email    *string `json:"email"`
	Payments *string `json:"payments"`
}

// HealthReport is the configuration overview served at /api/health.
type HealthReport struct {
	Timestamp    time.Time          `json:"timestamp"`
	Mode         string             `json:"mode"`
	Environment  map[string]string  `json:"environment"`
	Services     HealthServices     `json:"services"`
	Instructions HealthInstructions `json:"instructions"`
}

// RuntimeInfo describes the process serving the request.
type RuntimeInfo struct {
	Environment string `json:"environment"`
	GoVersion   string `json:"goVersion"`
	Platform    string `json:"platform"`
}

// EnvDebugReport exposes the shape of each credential without its value.
type EnvDebugReport struct {
	Timestamp       time.Time               `json:"timestamp"`
	Runtime         RuntimeInfo             `json:"runtime"`
	ResendAnalysis  credentials.Diagnosis   `json:"resendAnalysis"`
	Variables       []credentials.Diagnosis `json:"variables"`
	TotalEnvVars    int                     `json:"totalEnvVars"`
	EnvVarStatus    map[string]string       `json:"envVarStatus"`
	Recommendations []string                `json:"recommendations"`
}

// StripeTestResult is the successful outcome of the payment probe.
type StripeTestResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
	KeyType   string `json:"keyType"`
	KeyPrefix string `json:"keyPrefix"`
}

// HealthUseCase builds the diagnostic reports.
type HealthUseCase struct {
	cfg             *config.Config
	lookup          EnvLookup
	envCount        func() int
	prober          IStripeProber
	backend         string
	emailConfigured bool
	aiConfigured    bool
	now             func() time.Time
}

// NewHealthUseCase cria uma nova instância do caso de uso de diagnóstico
func NewHealthUseCase(cfg *config.Config, lookup EnvLookup, envCount func() int, prober IStripeProber, backend string, emailConfigured, aiConfigured bool) *HealthUseCase {
	return &HealthUseCase{
		cfg:             cfg,
		lookup:          lookup,
		envCount:        envCount,
		prober:          prober,
		backend:         backend,
		emailConfigured: emailConfigured,
		aiConfigured:    aiConfigured,
		now:             time.Now,
	}
}

var healthRules = []credentials.Rule{
	credentials.SupabaseURL,
	credentials.SupabaseServiceRoleKey,
	credentials.ResendAPIKey,
	credentials.StripeSecretKey,
	credentials.StripeWebhookSecret,
}

var debugRules = []credentials.Rule{
	credentials.ResendAPIKey,
	credentials.SupabaseURL,
	credentials.SupabaseServiceRoleKey,
	credentials.DatabaseURL,
	credentials.StripeSecretKey,
	credentials.StripeWebhookSecret,
	credentials.XAIAPIKey,
	credentials.AWSRegion,
}

// Health classifies the configured credentials.
func (uc *HealthUseCase) Health() *HealthReport {
	values := map[string]string{
		credentials.SupabaseURL.Name:            uc.cfg.Supabase.URL,
		credentials.SupabaseServiceRoleKey.Name: uc.cfg.Supabase.ServiceRoleKey,
		credentials.ResendAPIKey.Name:           uc.cfg.Email.ResendAPIKey,
		credentials.StripeSecretKey.Name:        uc.cfg.Stripe.SecretKey,
		credentials.StripeWebhookSecret.Name:    uc.cfg.Stripe.WebhookSecret,
	}

	env := make(map[string]string, len(healthRules))
	for _, rule := range healthRules {
		env[rule.Name] = credentials.Classify(values[rule.Name], rule).Label()
	}

	report := &HealthReport{
		Timestamp:   uc.now().UTC(),
		Mode:        uc.cfg.App.Environment,
		Environment: env,
		Services: HealthServices{
			Database:    databaseStatus(uc.cfg.Supabase),
			Persistence: uc.backend,
			Email:       StatusEmailDev,
			Payments:    StatusPaymentsDev,
			AI:          StatusAIUnavailable,
		},
	}

	if uc.emailConfigured {
		report.Services.Email = StatusAvailable
	} else {
		report.Instructions.Email = hint(credentials.ResendAPIKey)
	}
	if credentials.Classify(uc.cfg.Stripe.SecretKey, credentials.StripeSecretKey).IsValid() {
		report.Services.Payments = StatusAvailable
	} else {
		report.Instructions.Payments = hint(credentials.StripeSecretKey)
	}
	if uc.aiConfigured {
		report.Services.AI = StatusAvailable
	}
	if report.Services.Database == StatusDBPlaceholder {
		report.Instructions.Database = hint(credentials.SupabaseURL)
	}
	return report
}

func databaseStatus(cfg config.SupabaseConfig) string {
	if cfg.URL == "" || cfg.ServiceRoleKey == "" {
		return StatusDBNotSet
	}
	if credentials.IsPlaceholder(cfg.URL) || credentials.IsPlaceholder(cfg.ServiceRoleKey) {
		return StatusDBPlaceholder
	}
	if credentials.Classify(cfg.URL, credentials.SupabaseURL) != credentials.Valid {
		return StatusDBInvalidURL
	}
	return StatusDBValid
}

func hint(rule credentials.Rule) *string {
	h := rule.Hint
	return &h
}

// EnvDebug inspects the raw environment, before trimming, so stray quotes and
// whitespace show up.
func (uc *HealthUseCase) EnvDebug() *EnvDebugReport {
	report := &EnvDebugReport{
		Timestamp: uc.now().UTC(),
		Runtime: RuntimeInfo{
			Environment: uc.cfg.App.Environment,
			GoVersion:   runtime.Version(),
			Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		},
		EnvVarStatus: make(map[string]string, len(debugRules)),
	}
	if uc.envCount != nil {
		report.TotalEnvVars = uc.envCount()
	}

	for _, rule := range debugRules {
		raw := uc.raw(rule.Name)
		d := credentials.Describe(raw, rule)
		report.Variables = append(report.Variables, d)
		report.EnvVarStatus[rule.Name] = envVarStatus(credentials.Classify(raw, rule))
	}

	resend := uc.raw(credentials.ResendAPIKey.Name)
	report.ResendAnalysis = credentials.Describe(resend, credentials.ResendAPIKey)
	report.Recommendations = []string{resendRecommendation(resend)}
	return report
}

func (uc *HealthUseCase) raw(name string) string {
	if uc.lookup == nil {
		return ""
	}
	v, _ := uc.lookup(name)
	return v
}

func envVarStatus(c credentials.Classification) string {
	switch c {
	case credentials.Missing:
		return "MISSING"
	case credentials.Placeholder:
		return "PLACEHOLDER"
	case credentials.InvalidFormat:
		return "INVALID"
	}
	return "SET"
}

func resendRecommendation(raw string) string {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return "RESEND_API_KEY is missing - add it to your environment variables"
	case credentials.IsPlaceholder(v):
		return "RESEND_API_KEY appears to be a placeholder - replace with actual API key"
	case !strings.HasPrefix(v, "re_"):
		return "RESEND_API_KEY should start with 're_' - verify the key format"
	case len(v) < 20:
		return "RESEND_API_KEY seems too short - verify the complete key was copied"
	}
	return "RESEND_API_KEY appears to be properly configured"
}

// StripeTest probes the payment provider with the configured key.
func (uc *HealthUseCase) StripeTest(ctx context.Context) (*StripeTestResult, error) {
	res, err := uc.prober.Ping(ctx)
	if err != nil {
		return nil, apperrors.ExternalService(MsgStripeProbeFailed, err)
	}
	return &StripeTestResult{
		Success:   true,
		Message:   "Stripe connection successful",
		AccountID: res.AccountID,
		KeyType:   res.KeyType,
		KeyPrefix: res.KeyPrefix,
	}, nil
}
