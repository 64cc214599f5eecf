package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"theorie-engine/internal/domain"
)

type countingLoader struct {
	mu       sync.Mutex
	loads    int
	sections map[string][]domain.Question
}

func (l *countingLoader) LoadSection(_ context.Context, sectionID string) ([]domain.Question, error) {
	l.mu.Lock()
	l.loads++
	l.mu.Unlock()
	if questions, ok := l.sections[sectionID]; ok {
		return questions, nil
	}
	return nil, domain.ErrSectionNotFound
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads
}

func TestSectionCacheFillsOnMiss(t *testing.T) {
	ctx := context.Background()
	mr, client := testRedis(t)
	loader := &countingLoader{sections: map[string][]domain.Question{
		"s1": {{ID: "q1", Kind: domain.ScaleStrip, TopicID: "scales"}},
	}}
	cache := NewSectionCache(client, loader, time.Minute)

	first, err := cache.LoadSection(ctx, "s1")
	if err != nil {
		t.Fatalf("LoadSection: %v", err)
	}
	if len(first) != 1 || first[0].ID != "q1" {
		t.Fatalf("first load: %+v", first)
	}
	if !mr.Exists("quiz:section:s1") {
		t.Fatalf("expected section key to be cached")
	}

	// Second load is a cache hit; the loader is not consulted again.
	second, err := cache.LoadSection(ctx, "s1")
	if err != nil {
		t.Fatalf("LoadSection: %v", err)
	}
	if len(second) != 1 || second[0].ID != "q1" {
		t.Fatalf("second load: %+v", second)
	}
	if loader.count() != 1 {
		t.Fatalf("loader hit %d times, want 1", loader.count())
	}
}

func TestSectionCacheTTLJitterBounds(t *testing.T) {
	_, client := testRedis(t)
	cache := NewSectionCache(client, &countingLoader{}, 100*time.Second)

	for i := 0; i < 50; i++ {
		ttl := cache.ttlWithJitter()
		if ttl < 100*time.Second || ttl > 110*time.Second {
			t.Fatalf("jittered TTL %v outside [100s,110s]", ttl)
		}
	}
	zero := NewSectionCache(client, &countingLoader{}, 0)
	if ttl := zero.ttlWithJitter(); ttl != 0 {
		t.Fatalf("zero TTL must stay zero, got %v", ttl)
	}
}

func TestSectionCachePropagatesLoaderError(t *testing.T) {
	ctx := context.Background()
	mr, client := testRedis(t)
	cache := NewSectionCache(client, &countingLoader{}, time.Minute)

	if _, err := cache.LoadSection(ctx, "missing"); !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if mr.Exists("quiz:section:missing") {
		t.Fatalf("failed loads must not be cached")
	}
}

func TestSectionCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := testRedis(t)
	loader := &countingLoader{sections: map[string][]domain.Question{
		"s1": {{ID: "q1", Kind: domain.ScaleStrip}},
	}}
	cache := NewSectionCache(client, loader, time.Minute)

	if _, err := cache.LoadSection(ctx, "s1"); err != nil {
		t.Fatalf("LoadSection: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.LoadSection(ctx, "s1"); err != nil {
		t.Fatalf("LoadSection after expiry: %v", err)
	}
	if loader.count() != 2 {
		t.Fatalf("expired key must refetch, loader hit %d times", loader.count())
	}
}
