package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstream struct {
	server *httptest.Server
	calls  atomic.Int32
	auth   atomic.Value
}

func newUpstream(t *testing.T, handler http.HandlerFunc) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		u.auth.Store(r.Header.Get("Authorization"))
		handler(w, r)
	}))
	t.Cleanup(u.server.Close)
	return u
}

func okIdentity(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != MePath {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"uuid":        "8871abf3-ed11-4770-b986-e8d98d022d4f",
		"username":    "alice",
		"email":       "a@x.com",
		"permissions": []string{"view_picture"},
	})
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}
}

func newMiddleware(u *upstream, store cache.Store, ttl time.Duration, timeout time.Duration) *Middleware {
	return NewMiddleware(NewClient(u.server.URL, timeout, nil), store, Config{TTL: ttl, NegativeTTL: ttl}, nil)
}

func TestResolve_CachesAuthenticatedIdentity(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, okIdentity)
	m := newMiddleware(u, cache.NewMemory(), time.Minute, time.Second)

	first := m.Resolve(ctx, "Bearer tok")
	second := m.Resolve(ctx, "Bearer tok")

	assert.Equal(t, int32(1), u.calls.Load())
	assert.Equal(t, "Bearer tok", u.auth.Load())
	assert.False(t, first.IsAnonymous())
	assert.Equal(t, first, second)
	assert.True(t, second.HasPermission("view_picture"))
}

func TestResolve_DistinctTokensAreCachedSeparately(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, okIdentity)
	m := newMiddleware(u, cache.NewMemory(), time.Minute, time.Second)

	m.Resolve(ctx, "Bearer one")
	m.Resolve(ctx, "Bearer two")
	m.Resolve(ctx, "Bearer one")
	assert.Equal(t, int32(2), u.calls.Load())
}

func TestResolve_ZeroTTLStillResolves(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, okIdentity)
	m := newMiddleware(u, cache.NewMemory(), 0, time.Second)

	for i := 0; i < 3; i++ {
		assert.False(t, m.Resolve(ctx, "Bearer tok").IsAnonymous())
	}
	assert.Equal(t, int32(3), u.calls.Load())
}

func TestResolve_NoTokenNeverCallsUpstream(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, okIdentity)
	m := newMiddleware(u, cache.NewMemory(), time.Minute, time.Second)

	for _, header := range []string{"", "Basic abc", "Bearer "} {
		assert.True(t, m.Resolve(ctx, header).IsAnonymous(), header)
	}
	assert.Zero(t, u.calls.Load())
}

func TestResolve_RejectionIsNegativelyCached(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, status(http.StatusUnauthorized))
	store := cache.NewMemory()
	m := newMiddleware(u, store, time.Minute, time.Second)

	assert.True(t, m.Resolve(ctx, "Bearer bad").IsAnonymous())
	assert.True(t, m.Resolve(ctx, "Bearer bad").IsAnonymous())
	assert.Equal(t, int32(1), u.calls.Load())

	raw, err := store.Get(ctx, CacheKey("bad"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"anonymous":true}`, string(raw))
}

func TestResolve_ServerErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, status(http.StatusBadGateway))
	store := cache.NewMemory()
	m := newMiddleware(u, store, time.Minute, time.Second)

	assert.True(t, m.Resolve(ctx, "Bearer tok").IsAnonymous())
	assert.True(t, m.Resolve(ctx, "Bearer tok").IsAnonymous())
	assert.Equal(t, int32(2), u.calls.Load())

	_, err := store.Get(ctx, CacheKey("tok"))
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestResolve_TimeoutIsAnonymous(t *testing.T) {
	u := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		okIdentity(w, r)
	})
	store := cache.NewMemory()
	m := newMiddleware(u, store, time.Minute, 50*time.Millisecond)

	start := time.Now()
	id := m.Resolve(context.Background(), "Bearer slow")
	assert.True(t, id.IsAnonymous())
	assert.Less(t, time.Since(start), 400*time.Millisecond)

	_, err := store.Get(context.Background(), CacheKey("slow"))
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestResolve_UnreachableUpstream(t *testing.T) {
	m := NewMiddleware(NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil), cache.NewMemory(), Config{TTL: time.Minute}, nil)
	assert.True(t, m.Resolve(context.Background(), "Bearer tok").IsAnonymous())
}

func TestResolve_GarbledCacheEntryFallsBackToUpstream(t *testing.T) {
	ctx := context.Background()
	u := newUpstream(t, okIdentity)
	store := cache.NewMemory()
	require.NoError(t, store.Set(ctx, CacheKey("tok"), []byte("{not json"), time.Minute))
	m := newMiddleware(u, store, time.Minute, time.Second)

	assert.False(t, m.Resolve(ctx, "Bearer tok").IsAnonymous())
	assert.Equal(t, int32(1), u.calls.Load())
}

func TestResolve_SharedRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := cache.NewRedisFromClient(client)

	u := newUpstream(t, okIdentity)
	a := newMiddleware(u, store, 300*time.Second, time.Second)
	b := newMiddleware(u, store, 300*time.Second, time.Second)

	assert.False(t, a.Resolve(ctx, "Bearer tok").IsAnonymous())
	assert.False(t, b.Resolve(ctx, "Bearer tok").IsAnonymous())
	assert.Equal(t, int32(1), u.calls.Load())
	assert.Equal(t, 300*time.Second, mr.TTL(CacheKey("tok")))

	mr.FastForward(301 * time.Second)
	a.Resolve(ctx, "Bearer tok")
	assert.Equal(t, int32(2), u.calls.Load())
}

func TestHandler_NeverAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	u := newUpstream(t, status(http.StatusUnauthorized))
	m := newMiddleware(u, cache.NewMemory(), time.Minute, time.Second)

	r := gin.New()
	r.GET("/ping", m.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": identity.Get(c).IsAnonymous()})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}
