package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winecellar/intake/internal/store"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "STORE_BACKEND", "STORE_NAMESPACE", "REDIS_ADDR", "RESEND_KEY", "EMAIL_FROM", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, store.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "wines", cfg.Store.Namespace)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Store.RedisAddrs)
	assert.Equal(t, "onboarding@resend.dev", cfg.EmailFrom)
	assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	assert.False(t, cfg.EmailConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("REDIS_ADDR", "r1:6379, r2:6379,")
	t.Setenv("REDIS_CLUSTER", "true")
	t.Setenv("RESEND_KEY", "re_123")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, store.BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, []string{"r1:6379", "r2:6379"}, cfg.Store.RedisAddrs)
	assert.True(t, cfg.Store.RedisCluster)
	assert.True(t, cfg.EmailConfigured())
	assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "dynamo")

	_, err := Load()
	assert.ErrorIs(t, err, store.ErrUnknownBackend)
}

func TestLoad_InvalidMaxBody(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := Load()
	assert.Error(t, err)
}
