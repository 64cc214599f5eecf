package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"theorie-engine/internal/domain"
)

// SectionLoader fetches question content from a backing store.
type SectionLoader interface {
	LoadSection(ctx context.Context, sectionID string) ([]domain.Question, error)
}

// SectionCache caches question sections in Redis (JSON per section key) and
// falls back to a loader on cache miss. Concurrent misses for one section
// collapse via singleflight; TTLs carry up to 10% jitter to spread
// expirations.
type SectionCache struct {
	client *redis.Client
	loader SectionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewSectionCache(client *redis.Client, loader SectionLoader, ttl time.Duration) *SectionCache {
	return &SectionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// LoadSection returns the cached section, filling the cache from the loader
// on miss.
func (c *SectionCache) LoadSection(ctx context.Context, sectionID string) ([]domain.Question, error) {
	key := c.sectionKey(sectionID)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return decodeSection(raw)
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("section cache get: %w", err)
	}

	result, err, _ := c.sf.Do(sectionID, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		raw, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return decodeSection(raw)
		}

		questions, err := c.loader.LoadSection(ctx, sectionID)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, fmt.Errorf("marshal section: %w", err)
		}
		_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *SectionCache) sectionKey(sectionID string) string {
	return "quiz:section:" + sectionID
}

func (c *SectionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func decodeSection(raw []byte) ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal section: %w", err)
	}
	return questions, nil
}
