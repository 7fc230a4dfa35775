package session

import (
	"context"
	"time"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/quiz"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/infrastructure/cache"
)

// MemoryStore keeps encoded sessions in the TTL cache so callers never share
// a session value.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(c *cache.Cache, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: c, ttl: ttl}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	value, ok := m.cache.Get(key(id))
	if !ok {
		return nil, ErrNotFound
	}
	return decode(value.([]byte))
}

func (m *MemoryStore) Save(_ context.Context, s *quiz.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.cache.Set(key(s.ID), data, m.ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(key(id))
	return nil
}

func (m *MemoryStore) Close() error {
	m.cache.Close()
	return nil
}
