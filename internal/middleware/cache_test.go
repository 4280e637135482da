package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog-api/internal/config"
)

// memRedis is an in-memory cacheStore.  Scan serves pageSize keys per call
// from a snapshot taken at cursor 0, like a real cursor walk.
type memRedis struct {
	mu       sync.Mutex
	data     map[string][]byte
	ttl      map[string]time.Duration
	pageSize int
	snapshot []string
	scans    int
	scanErr  error
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}, pageSize: 2}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (m *memRedis) SetEx(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value.([]byte)...)
	m.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++
	if m.scanErr != nil {
		return redis.NewScanCmdResult(nil, 0, m.scanErr)
	}
	if cursor == 0 {
		m.snapshot = m.snapshot[:0]
		prefix := strings.TrimSuffix(match, "*")
		for k := range m.data {
			if strings.HasPrefix(k, prefix) {
				m.snapshot = append(m.snapshot, k)
			}
		}
		sort.Strings(m.snapshot)
	}
	start := int(cursor)
	end := start + m.pageSize
	if end >= len(m.snapshot) {
		return redis.NewScanCmdResult(m.snapshot[start:], 0, nil)
	}
	return redis.NewScanCmdResult(m.snapshot[start:end], uint64(end), nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *memRedis) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "movies-cache",
		MaxBodyBytes: 1 << 20,
	}
}

func serve(e *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCache_HitReplaysStoredResponse(t *testing.T) {
	store := newMemRedis()
	calls := 0
	e := echo.New()
	e.GET("/movies/", func(c echo.Context) error {
		calls++
		c.Response().Header().Set("X-Page-Source", "db")
		return c.JSON(http.StatusOK, echo.Map{"count": 120, "page": c.QueryParam("page")})
	}, newCache(cacheCfg(), store))

	first := serve(e, "/movies/?page=2")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, store.len())

	second := serve(e, "/movies/?page=2")
	assert.Equal(t, 1, calls, "hit must not reach the handler")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "db", second.Header().Get("X-Page-Source"))
	assert.Equal(t, first.Header().Get(echo.HeaderContentType), second.Header().Get(echo.HeaderContentType))
	assert.Equal(t, first.Body.String(), second.Body.String())

	serve(e, "/movies/?page=3")
	assert.Equal(t, 2, calls, "other query string is a different entry")
	for _, ttl := range store.ttl {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestCache_ErrorResponsesNotStored(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusServiceUnavailable} {
		store := newMemRedis()
		calls := 0
		e := echo.New()
		e.GET("/movies/:id/", func(c echo.Context) error {
			calls++
			return c.JSON(status, echo.Map{"error": http.StatusText(status)})
		}, newCache(cacheCfg(), store))

		serve(e, "/movies/11111111-1111-1111-1111-111111111111/")
		rec := serve(e, "/movies/11111111-1111-1111-1111-111111111111/")
		assert.Equal(t, status, rec.Code)
		assert.Equal(t, 0, store.len(), "status %d", status)
		assert.Equal(t, 2, calls, "status %d", status)
	}
}

func TestCache_HandlerErrorNotStored(t *testing.T) {
	store := newMemRedis()
	mw := newCache(cacheCfg(), store)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/movies/", nil), httptest.NewRecorder())

	err := mw(func(echo.Context) error { return echo.ErrServiceUnavailable })(c)
	assert.ErrorIs(t, err, echo.ErrServiceUnavailable)
	assert.Equal(t, 0, store.len())
}

func TestCache_OversizedBodyNotStored(t *testing.T) {
	store := newMemRedis()
	cfg := cacheCfg()
	cfg.MaxBodyBytes = 8
	body := strings.Repeat("x", 32)
	e := echo.New()
	e.GET("/movies/", func(c echo.Context) error { return c.String(http.StatusOK, body) }, newCache(cfg, store))

	rec := serve(e, "/movies/")
	assert.Equal(t, body, rec.Body.String(), "client still gets the full body")
	assert.Equal(t, 0, store.len())
}

func TestCache_SkipsUncachedMethods(t *testing.T) {
	store := newMemRedis()
	e := echo.New()
	e.POST("/movies/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, newCache(cacheCfg(), store))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/movies/", nil))
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Equal(t, 0, store.len())
}

func TestPurge_WalksEveryCursorPage(t *testing.T) {
	store := newMemRedis()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		store.data["movies-cache:"+k] = []byte(k)
	}
	store.data["rl:ip:10.0.0.1"] = []byte("1")

	n, err := purge(context.Background(), store, "movies-cache")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, store.scans)
	assert.Equal(t, 1, store.len(), "keys outside the prefix survive")
	assert.Contains(t, store.data, "rl:ip:10.0.0.1")
}

func TestPurge_ScanError(t *testing.T) {
	store := newMemRedis()
	store.data["movies-cache:a"] = []byte("a")
	store.scanErr = errors.New("connection reset")

	n, err := purge(context.Background(), store, "movies-cache")
	assert.EqualError(t, err, "connection reset")
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, store.len())
}

func TestPurgeRedisCache_NilClient(t *testing.T) {
	n, err := PurgeRedisCache(context.Background(), nil, "movies-cache")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
