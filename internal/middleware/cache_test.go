package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/config"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "fleet-cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestRedisCache_MissThenHit(t *testing.T) {
	rdb := setupRedis(t)
	e := echo.New()
	e.Use(NewRedisCache(cacheTestConfig(), rdb))

	calls := 0
	e.GET("/v1/public/seat-diagrams", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"call": calls})
	})

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/v1/public/seat-diagrams", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/v1/public/seat-diagrams", nil))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	// The handler ran once; the hit replayed the stored body verbatim.
	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestRedisCache_QueryIsPartOfTheKey(t *testing.T) {
	rdb := setupRedis(t)
	e := echo.New()
	e.Use(NewRedisCache(cacheTestConfig(), rdb))

	e.GET("/v1/public/nodes", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"kind": c.QueryParam("kind")})
	})

	tollRec := httptest.NewRecorder()
	e.ServeHTTP(tollRec, httptest.NewRequest(http.MethodGet, "/v1/public/nodes?kind=TOLL", nil))
	assert.Equal(t, "MISS", tollRec.Header().Get("X-Cache"))

	stopRec := httptest.NewRecorder()
	e.ServeHTTP(stopRec, httptest.NewRequest(http.MethodGet, "/v1/public/nodes?kind=STOP", nil))
	assert.Equal(t, "MISS", stopRec.Header().Get("X-Cache"))
	assert.NotEqual(t, tollRec.Body.String(), stopRec.Body.String())
}

func TestRedisCache_ErrorsAreNotStored(t *testing.T) {
	rdb := setupRedis(t)
	e := echo.New()
	e.Use(NewRedisCache(cacheTestConfig(), rdb))

	fail := true
	e.GET("/v1/public/pathways", func(c echo.Context) error {
		if fail {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": []string{}})
	})

	errRec := httptest.NewRecorder()
	e.ServeHTTP(errRec, httptest.NewRequest(http.MethodGet, "/v1/public/pathways", nil))
	require.Equal(t, http.StatusInternalServerError, errRec.Code)

	fail = false
	okRec := httptest.NewRecorder()
	e.ServeHTTP(okRec, httptest.NewRequest(http.MethodGet, "/v1/public/pathways", nil))
	assert.Equal(t, http.StatusOK, okRec.Code)
	assert.Equal(t, "MISS", okRec.Header().Get("X-Cache"))
}

func TestRedisCache_DisabledIsPassThrough(t *testing.T) {
	cfg := cacheTestConfig()
	cfg.Enabled = false
	e := echo.New()
	e.Use(NewRedisCache(cfg, nil))

	calls := 0
	e.GET("/v1/public/buses", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"call": calls})
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/public/buses", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestRedisCache_EncodeDecodeRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)

	for _, garbage := range [][]byte{nil, []byte("short"), []byte(fmt.Sprintf("%08d", 1))} {
		_, _, _, ok := decodePayload(garbage)
		assert.False(t, ok)
	}
}
