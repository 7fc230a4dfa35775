package cache

import (
	"sync"
	"time"
)

// Item represents a cached item with expiration
type Item struct {
	Value      interface{}
	Expiration int64
}

func (i Item) expired(now int64) bool {
	return i.Expiration > 0 && now > i.Expiration
}

// Cache is an in-memory TTL cache. It backs the wizard sessions when Redis is
// not configured and memoizes the payment connectivity probe.
type Cache struct {
	items map[string]Item
	mu    sync.RWMutex

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a new cache instance whose janitor runs every cleanupInterval.
// A zero interval disables the janitor.
func New(cleanupInterval time.Duration, opts ...Option) *Cache {
	cache := &Cache{
		items: make(map[string]Item),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cache)
	}

	if cleanupInterval > 0 {
		go cache.janitor(cleanupInterval)
	}

	return cache
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.DeleteExpired()
		case <-c.stop:
			return
		}
	}
}

// Close stops the janitor. It is safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Set adds an item to the cache with the given expiration duration.
// A non-positive duration keeps the item until it is deleted.
func (c *Cache) Set(key string, value interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration int64
	if duration > 0 {
		expiration = c.now().Add(duration).UnixNano()
	}
	c.items[key] = Item{
		Value:      value,
		Expiration: expiration,
	}
}

// Get retrieves an item from the cache
// Returns the item and a boolean indicating if the item was found
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || item.expired(c.now().UnixNano()) {
		return nil, false
	}

	return item.Value, true
}

// GetOrLoad returns the cached value or stores the loader's result. Loader
// errors are returned and nothing is cached.
func (c *Cache) GetOrLoad(key string, duration time.Duration, load func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := load()
	if err != nil {
		return nil, err
	}
	c.Set(key, value, duration)
	return value, nil
}

// Delete removes an item from the cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// DeleteExpired removes all expired items from the cache
func (c *Cache) DeleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UnixNano()
	for k, v := range c.items {
		if v.expired(now) {
			delete(c.items, k)
		}
	}
}

// Len counts the stored items, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]Item)
}
