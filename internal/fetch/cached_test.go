package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (s *stubFetcher) FetchCleanText(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

type memoryCache struct {
	items  map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestCachedFetcher_HitAfterMiss(t *testing.T) {
	next := &stubFetcher{text: "clean text"}
	cache := newMemoryCache()
	f := NewCachedFetcher(next, cache, time.Hour, nil)

	for i := 0; i < 3; i++ {
		text, err := f.FetchCleanText(context.Background(), "https://example.com/job")
		require.NoError(t, err)
		assert.Equal(t, "clean text", text)
	}

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, time.Hour, cache.ttls[CacheKey("https://example.com/job")])
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	next := &stubFetcher{err: &ContentTooShortError{URL: "u", Length: 3}}
	cache := newMemoryCache()
	f := NewCachedFetcher(next, cache, 0, nil)

	_, err := f.FetchCleanText(context.Background(), "u")
	var shortErr *ContentTooShortError
	require.ErrorAs(t, err, &shortErr)
	assert.Empty(t, cache.items)
}

func TestCachedFetcher_CacheFailuresIgnored(t *testing.T) {
	next := &stubFetcher{text: "fresh"}
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	f := NewCachedFetcher(next, cache, 0, nil)

	text, err := f.FetchCleanText(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh", text)
	assert.Equal(t, 1, next.calls)
}

func TestCachedFetcher_NilCache(t *testing.T) {
	next := &stubFetcher{text: "direct"}
	f := NewCachedFetcher(next, nil, 0, nil)

	for i := 0; i < 2; i++ {
		text, err := f.FetchCleanText(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "direct", text)
	}
	assert.Equal(t, 2, next.calls)
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("https://example.com/a")
	assert.Equal(t, a, CacheKey("https://example.com/a"))
	assert.NotEqual(t, a, CacheKey("https://example.com/b"))
	assert.Contains(t, a, cacheKeyPrefix)
}
