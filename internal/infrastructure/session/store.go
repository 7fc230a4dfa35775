package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/logger"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("quiz session not found")

// Store keeps wizard sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Save(ctx context.Context, s *quiz.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore returns a Redis store when REDIS_URL is set and reachable, and an
// in-memory store otherwise.
func NewStore(ctx context.Context, cfg config.SessionConfig, log logger.Logger) Store {
	if cfg.RedisURL == "" {
		log.Info("Quiz sessions kept in memory", map[string]interface{}{"ttl": cfg.TTL.String()})
		return NewMemoryStore(cache.New(time.Minute), cfg.TTL)
	}

	store, err := NewRedisStore(cfg.RedisURL, cfg.TTL)
	if err == nil {
		err = store.Ping(ctx)
	}
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, quiz sessions kept in memory", nil)
		if store != nil {
			_ = store.Close()
		}
		return NewMemoryStore(cache.New(time.Minute), cfg.TTL)
	}

	log.Info("Quiz sessions kept in Redis", map[string]interface{}{"ttl": cfg.TTL.String()})
	return store
}

func key(id string) string {
	return "quiz:session:" + id
}

func encode(s *quiz.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*quiz.Session, error) {
	var s quiz.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}
