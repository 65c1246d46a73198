package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 3, cfg.Dispatch.MaxAttempts)
	assert.Equal(t, "redis", cfg.Queue.Connection)
	assert.Equal(t, "default", cfg.Queue.Name)
	assert.Equal(t, "jobs", cfg.Database.Table)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BG_DISPATCH_MAX_ATTEMPTS", "5")
	t.Setenv("QUEUE_CONNECTION", "database")
	t.Setenv("BG_ALLOWED_NAMESPACES", `App\Jobs,Acme\Jobs`)

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 5, cfg.Dispatch.MaxAttempts)
	assert.Equal(t, "database", cfg.Queue.Connection)
	assert.Equal(t, []string{`App\Jobs`, `Acme\Jobs`}, cfg.Queue.AllowedNamespaces)
}
