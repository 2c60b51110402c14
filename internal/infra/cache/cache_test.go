package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code string `json:"code"`
}

func newMiniredisStore(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisFromClient(client), mr
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_ZeroTTLDisablesWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestNoopStore_AlwaysMisses(t *testing.T) {
	ctx := context.Background()
	s := NewNoop()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Hour))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniredisStore(t)

	_, err := s.Get(ctx, "user_jwt:abc")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, s.Set(ctx, "user_jwt:abc", []byte(`{"uuid":"1"}`), 300*time.Second))
	got, err := s.Get(ctx, "user_jwt:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"1"}`, string(got))
	assert.Equal(t, 300*time.Second, mr.TTL("user_jwt:abc"))

	require.NoError(t, s.Delete(ctx, "user_jwt:abc"))
	assert.False(t, mr.Exists("user_jwt:abc"))
}

func TestRedisStore_Expires(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniredisStore(t)

	require.NoError(t, s.Set(ctx, "system:t1", []byte("x"), time.Hour))
	mr.FastForward(time.Hour + time.Second)

	_, err := s.Get(ctx, "system:t1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, SetJSON(ctx, s, "system:t1", payload{Code: "t1"}, time.Minute))

	var got payload
	require.NoError(t, GetJSON(ctx, s, "system:t1", &got))
	assert.Equal(t, "t1", got.Code)

	require.NoError(t, SetJSON(ctx, s, "system:t2", payload{Code: "t2"}, 0))
	assert.ErrorIs(t, GetJSON(ctx, s, "system:t2", &got), ErrMiss)
}

func TestNew_Drivers(t *testing.T) {
	s, err := New(Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.NotNil(t, s)

	s, err = New(Config{Driver: DriverNone})
	require.NoError(t, err)
	assert.IsType(t, noopStore{}, s)

	_, err = New(Config{Driver: DriverRedis})
	assert.Error(t, err)

	_, err = New(Config{Driver: "memcached"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
