package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog-api/internal/config"
)

func newContext(e *echo.Echo, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestNewRedisCache_DisabledWithoutClient(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/movies/")

	mw := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)
	err := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })(c)

	require.NoError(t, err)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheKeyFrom_UsesRequestPath(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "movies-cache", KeyStrategy: "route_query"}

	a, _ := newContext(e, http.MethodGet, "/movies/11111111-1111-1111-1111-111111111111/")
	a.SetPath("/movies/:id/")
	b, _ := newContext(e, http.MethodGet, "/movies/22222222-2222-2222-2222-222222222222/")
	b.SetPath("/movies/:id/")
	p1, _ := newContext(e, http.MethodGet, "/movies/?page=1")
	p2, _ := newContext(e, http.MethodGet, "/movies/?page=2")

	assert.NotEqual(t, cacheKeyFrom(cfg, a), cacheKeyFrom(cfg, b))
	assert.NotEqual(t, cacheKeyFrom(cfg, p1), cacheKeyFrom(cfg, p2))
	assert.Regexp(t, `^movies-cache:[0-9a-f]{40}$`, cacheKeyFrom(cfg, a))

	cfg.KeyStrategy = "route"
	assert.Equal(t, cacheKeyFrom(cfg, p1), cacheKeyFrom(cfg, p2))
}

func TestPayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"count":0}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"count":0}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0})
	assert.False(t, ok, "header length past end of buffer")
}

func TestCaptureWriter_Limit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("defg"))

	assert.Equal(t, "abcd", cw.buf.String())
	assert.Equal(t, int64(7), cw.size)
	assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	c, _ := newContext(e, http.MethodGet, "/movies/")
	c.Request().RemoteAddr = "10.0.0.7:5555"
	c.SetPath("/movies/")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:10.0.0.7:route:GET /movies/", buildRateKey(cfg, c))
	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(cfg, c))
	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:GET /movies/", buildRateKey(cfg, c))
}

func TestParseLimiterResult(t *testing.T) {
	allowed, remaining, retry, ok := parseLimiterResult([]interface{}{int64(1), int64(59), int64(0)})
	require.True(t, ok)
	assert.True(t, allowed)
	assert.Equal(t, int64(59), remaining)
	assert.Equal(t, int64(0), retry)

	allowed, _, retry, ok = parseLimiterResult([]interface{}{"0", "0", "750"})
	require.True(t, ok)
	assert.False(t, allowed)
	assert.Equal(t, int64(750), retry)

	_, _, _, ok = parseLimiterResult("nope")
	assert.False(t, ok)
}

func TestNewTokenBucket_DisabledWithoutClient(t *testing.T) {
	e := echo.New()
	c, rec := newContext(e, http.MethodGet, "/movies/")
	log, _ := test.NewNullLogger()

	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, log)
	require.NoError(t, mw(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/ok", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error {
		c.Set(ErrorCauseKey, errors.New("db down"))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "unavailable"})
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.EqualError(t, hook.LastEntry().Data[logrus.ErrorKey].(error), "db down")
}
