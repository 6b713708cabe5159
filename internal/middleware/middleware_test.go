package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
	"github.com/iliyamo/cinema-seat-editor/internal/utils"
)

const testSecret = "s3cret"

func whoami(c echo.Context) error {
	id, _ := UserID(c)
	return c.JSON(http.StatusOK, echo.Map{"id": id, "role": Role(c)})
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	e := echo.New()
	e.GET("/me", whoami, JWTAuth(testSecret), RequireRole("ADMIN", "OPERATOR"))

	rec := serve(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(e, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	op, err := utils.NewAccessToken(testSecret, 9, "OPERATOR", 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/me", op.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":9,"role":"OPERATOR"}`, rec.Body.String())

	cust, err := utils.NewAccessToken(testSecret, 10, "CUSTOMER", 5)
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/me", cust.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cfg := config.RateLimitConfig{Enabled: true, Limit: 2, Window: time.Minute, Prefix: "rl"}
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, RateLimit(cfg, rdb, zap.NewNop()))

	rec := serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(e, http.MethodGet, "/x", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute}
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, RateLimit(cfg, nil, zap.NewNop()))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(e, http.MethodGet, "/x", "").Code)
	}
}

func TestResponseCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	calls := 0
	cfg := config.ResponseCacheConfig{Enabled: true, TTL: time.Minute, Prefix: "resp"}
	e := echo.New()
	e.GET("/movies", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"page": c.QueryParam("page")})
	}, ResponseCache(cfg, rdb, zap.NewNop()))

	rec := serve(e, http.MethodGet, "/movies?page=1", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	rec = serve(e, http.MethodGet, "/movies?page=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"page":"1"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "application/json")
	assert.Equal(t, 1, calls)

	rec = serve(e, http.MethodGet, "/movies?page=2", "")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestPayloadCodec(t *testing.T) {
	h := http.Header{"Content-Type": {"application/json"}}
	b, err := encodePayload(201, h, []byte("{}"))
	require.NoError(t, err)
	status, hdr, body, ok := decodePayload(b)
	require.True(t, ok)
	assert.Equal(t, 201, status)
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	assert.Equal(t, "{}", string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}

func TestRequestIDAndRecover(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(), AccessLog(zap.NewNop()), Recover(zap.NewNop()))
	e.GET("/boom", func(c echo.Context) error { panic("boom") })
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := serve(e, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 2*requestIDBytes)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
}
