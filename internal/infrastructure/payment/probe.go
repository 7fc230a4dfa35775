package payment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const probeCacheKey = "stripe:account"

// ProbeTTL bounds how often the probe reaches the provider.
const ProbeTTL = 60 * time.Second

// ProbeResult describes the account behind the configured key.
type ProbeResult struct {
	AccountID string
	KeyType   string
	KeyPrefix string
}

// Ping retrieves the account to confirm the key works. Successful results are
// cached; failures are not.
func (c *Client) Ping(ctx context.Context) (*ProbeResult, error) {
	if !strings.HasPrefix(c.secretKey, "sk_") {
		return nil, fmt.Errorf("invalid or missing Stripe key")
	}

	load := func() (interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		acct, err := c.accounts.Get()
		if err != nil {
			return nil, err
		}
		return &ProbeResult{
			AccountID: acct.ID,
			KeyType:   keyType(c.secretKey),
			KeyPrefix: keyPrefix(c.secretKey),
		}, nil
	}

	if c.cache == nil {
		v, err := load()
		if err != nil {
			return nil, err
		}
		return v.(*ProbeResult), nil
	}

	v, err := c.cache.GetOrLoad(probeCacheKey, ProbeTTL, load)
	if err != nil {
		c.log.WithError(err).Warn("Stripe connectivity probe failed", nil)
		return nil, err
	}
	return v.(*ProbeResult), nil
}

func keyType(key string) string {
	if strings.HasPrefix(key, "sk_live_") {
		return "Live"
	}
	return "Test"
}

func keyPrefix(key string) string {
	if len(key) > 8 {
		return key[:8] + "..."
	}
	return key
}
