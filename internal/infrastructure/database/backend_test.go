package database

import (
	"strings"
	"testing"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	applogger "github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestSelectBackend(t *testing.T) {
	serviceKey := strings.Repeat("k", 64)

	tests := []struct {
		name string
		cfg  config.Config
		want BackendKind
	}{
		{
			name: "supabase when both settings are valid",
			cfg: config.Config{
				Supabase: config.SupabaseConfig{URL: "https://abc.supabase.co", ServiceRoleKey: serviceKey},
				Database: config.DatabaseConfig{URL: "postgres://u:p@localhost:5432/quiz"},
			},
			want: BackendSupabase,
		},
		{
			name: "postgres when supabase key is a placeholder",
			cfg: config.Config{
				Supabase: config.SupabaseConfig{URL: "https://abc.supabase.co", ServiceRoleKey: "your_supabase_service_role_key"},
				Database: config.DatabaseConfig{URL: "postgres://u:p@localhost:5432/quiz"},
			},
			want: BackendPostgres,
		},
		{
			name: "noop when nothing is configured",
			cfg:  config.Config{},
			want: BackendNoop,
		},
		{
			name: "noop when database url has the wrong scheme",
			cfg: config.Config{
				Database: config.DatabaseConfig{URL: "mysql://u:p@localhost/quiz"},
			},
			want: BackendNoop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectBackend(&tt.cfg))
		})
	}
}

func TestOpenBackend_NoopWithoutCredentials(t *testing.T) {
	backend := OpenBackend(&config.Config{}, applogger.NewTestLogger(t))
	assert.Equal(t, string(BackendNoop), backend.Name())
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel("debug"))
	assert.Equal(t, logger.Warn, gormLogLevel("WARN"))
	assert.Equal(t, logger.Error, gormLogLevel("info"))
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
}
