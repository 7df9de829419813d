package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-strategies/repository"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

// ResultCache memoizes calculator results. The calculators are pure, so a
// result is fully determined by the rules and the input it was computed from.
type ResultCache struct {
	repo repository.CacheRepository
	ttl  time.Duration
	log  *logrus.Logger
}

func NewResultCache(repo repository.CacheRepository, ttl time.Duration, log *logrus.Logger) *ResultCache {
	return &ResultCache{repo: repo, ttl: ttl, log: log}
}

func cacheKey(kind string, rules Rules, input any) (string, error) {
	payload, err := json.Marshal(struct {
		Rules Rules
		Input any
	}{rules, input})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%016x", kind, xxhash.Sum64(payload)), nil
}

// cached returns the stored result for (kind, rules, input) or computes and
// stores it. Cache failures are logged and never fail the calculation.
func cached[T any](
	ctx context.Context,
	c *ResultCache,
	kind string,
	rules Rules,
	input any,
	compute func() (T, error),
) (T, error) {
	if c == nil || c.repo == nil {
		return compute()
	}

	key, err := cacheKey(kind, rules, input)
	if err != nil {
		// unencodable inputs (NaN, Inf) are rejected by compute
		return compute()
	}

	if raw, ok, err := c.repo.Get(ctx, key); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if ok {
		var hit T
		if err := json.Unmarshal([]byte(raw), &hit); err == nil {
			c.log.WithField("key", key).Debug("cache hit")
			return hit, nil
		}
		c.log.WithField("key", key).Warn("discarding undecodable cache entry")
	}

	result, err := compute()
	if err != nil {
		return result, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache encode failed")
		return result, nil
	}
	if err := c.repo.Set(ctx, key, string(encoded), c.ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}

	return result, nil
}
