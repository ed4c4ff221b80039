package cache

import (
	"context"
	"time"
)

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Compute errors are returned as-is; storage errors after a
// successful compute are swallowed so a flaky cache never loses work.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, nil
	}

	data, err := compute()
	if err != nil {
		return nil, err
	}

	_ = c.Set(ctx, key, data, ttl)
	return data, nil
}
