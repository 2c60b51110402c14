package acess_log

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memorySink struct {
	mu      sync.Mutex
	entries []AccessLog
}

func (s *memorySink) Save(_ context.Context, entries []AccessLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func TestMiddleware_RecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	sink := &memorySink{}
	svc := NewService(sink, batch.Config{BatchSize: 10, FlushInterval: time.Hour}, nil)

	r := gin.New()
	r.Use(Middleware("resource", svc, zap.New(core)))
	r.GET("/users/:id", func(c *gin.Context) {
		identity.Set(c, identity.Authenticated("8871abf3-ed11-4770-b986-e8d98d022d4f", "alice", "", nil))
		c.Status(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	req.Header.Set(HeaderRequestID, "trace-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-1", w.Header().Get(HeaderRequestID))
	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusTeapot, logs.All()[0].ContextMap()["status"])

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	require.Len(t, sink.entries, 1)
	e := sink.entries[0]
	assert.Equal(t, "resource", e.Service)
	assert.Equal(t, "trace-1", e.RequestID)
	assert.Equal(t, "/users/:id", e.Route)
	assert.Equal(t, "/users/42", e.Path)
	assert.Equal(t, "alice", e.Identifier)
	require.NotNil(t, e.UserUUID)
	assert.Equal(t, http.StatusTeapot, e.StatusCode)
}

func TestMiddleware_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware("account", nil, nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestNew_Disabled(t *testing.T) {
	_, err := New(nil, Config{Enabled: false}, nil)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, MustUse())
	assert.NoError(t, Close(context.Background()))
}
