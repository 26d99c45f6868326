package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("SEED_WORKERS", "")

	c := Load()
	assert.Equal(t, "mysql", c.StoreBackend)
	assert.Equal(t, 900*time.Second, c.CacheTTL)
	assert.Equal(t, 4, c.SeedWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("PROVIDERS_RPS", "nope")
	t.Setenv("REDIS_DB", "2")

	c := Load()
	assert.Equal(t, "memory", c.StoreBackend)
	assert.Equal(t, time.Minute, c.CacheTTL)
	assert.Equal(t, 5, c.ProvidersRPS)
	assert.Equal(t, 2, c.RedisDB)
}

func TestLoad_UnknownBackendFallsBack(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	assert.Equal(t, "mysql", Load().StoreBackend)
}
