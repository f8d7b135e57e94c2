package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "1760861730123-aa", `{"first_name":"John"}`))

	v, err := s.Get(ctx, "1760861730123-aa")
	require.NoError(t, err)
	assert.Equal(t, `{"first_name":"John"}`, v)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", "first"))
	require.NoError(t, s.Put(ctx, "k", "second"))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_GetMissing(t *testing.T) {
	_, err := NewMemoryStore().Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Options{Backend: "MEMORY"})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &MemoryStore{}, s)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Backend: "dynamo"})
	require.NotNil(t, closeFn)
	closeFn()
	assert.True(t, errors.Is(err, ErrUnknownBackend))
	assert.Contains(t, err.Error(), `"dynamo"`)
}

func TestRedisStore_key(t *testing.T) {
	assert.Equal(t, "wines:123", (&RedisStore{namespace: "wines"}).key("123"))
	assert.Equal(t, "123", (&RedisStore{}).key("123"))
}

func uniqueKey() string {
	return fmt.Sprintf("test-%d", time.Now().UnixNano())
}

func TestRedisStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := NewRedisClient(strings.Split(addr, ","), os.Getenv("REDIS_PASSWORD"), false)
	defer client.Close()

	s := NewRedisStore(client, "intake-test")
	require.NoError(t, s.Ping(ctx))

	key := uniqueKey()
	require.NoError(t, s.Put(ctx, key, `{"email":"john.doe@example.com"}`))
	defer client.Del(ctx, s.key(key))

	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"email":"john.doe@example.com"}`, v)

	_, err = s.Get(ctx, key+"-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPgStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	s := NewPgStore(pool, "intake-test")
	key := uniqueKey()
	defer pool.Exec(ctx, `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`, "intake-test", key)

	require.NoError(t, s.Put(ctx, key, "first"))
	require.NoError(t, s.Put(ctx, key, "second"))

	v, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	_, err = s.Get(ctx, key+"-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
