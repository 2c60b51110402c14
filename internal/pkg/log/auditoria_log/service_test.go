package auditoria_log

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu      sync.Mutex
	entries []AuditLog
}

func (s *memorySink) Save(_ context.Context, entries []AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func TestService_RecordAndClose(t *testing.T) {
	sink := &memorySink{}
	svc := NewService(sink, batch.Config{BatchSize: 10, FlushInterval: time.Hour}, nil)

	require.True(t, svc.Record(AuditLog{Action: ActionLogin, Success: true}))
	require.True(t, svc.Record(AuditLog{Action: ActionRegister}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	require.Len(t, sink.entries, 2)
	assert.Equal(t, ActionLogin, sink.entries[0].Action)
	assert.False(t, sink.entries[0].CreatedAt.IsZero())
	assert.False(t, svc.Record(AuditLog{}), "closed service must refuse entries")
	assert.Equal(t, int64(1), svc.Dropped())
}

func TestRecord_WithoutInstanceIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		Record(AuditLog{})
	})
	assert.NoError(t, Close(context.Background()))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "", Redact(nil))

	type login struct {
		Account  string `json:"account"`
		Password string `json:"password"`
	}
	assert.JSONEq(t, `{"account":"alice","password":"***"}`, Redact(login{Account: "alice", Password: "hunter2"}))

	nested := map[string]any{
		"user":   map[string]any{"Password": "x", "name": "bob"},
		"tokens": []any{map[string]any{"refresh": "r", "access": "a"}},
	}
	assert.JSONEq(t, `{"user":{"Password":"***","name":"bob"},"tokens":[{"refresh":"***","access":"***"}]}`, Redact(nested))

	assert.Contains(t, Redact(func() {}), "0x")
}
