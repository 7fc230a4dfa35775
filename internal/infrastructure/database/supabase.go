package database

import (
	"fmt"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/supabase-community/supabase-go"
)

// NewSupabaseClient conecta ao PostgREST do projeto Supabase com a service role key
func NewSupabaseClient(cfg config.SupabaseConfig) (*supabase.Client, error) {
	client, err := supabase.NewClient(cfg.URL, cfg.ServiceRoleKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return client, nil
}
