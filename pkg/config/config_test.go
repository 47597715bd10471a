package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracarta/terraviz/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1000.0, cfg.Render.Scale)
	assert.Equal(t, "steelblue", cfg.Render.FlowColor)
	assert.Equal(t, "file", cfg.Cache.Backend)
	assert.NotEmpty(t, cfg.Cache.Dir)
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	path := writeConfig(t, `
[render]
flow_color = "navy"

[cache]
backend = "none"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "navy", cfg.Render.FlowColor)
	assert.Equal(t, "none", cfg.Cache.Backend)
	// Unset fields keep their defaults.
	assert.Equal(t, 1000.0, cfg.Render.Scale)
	assert.Equal(t, 0.04, cfg.Render.NodeSize)
}

func TestLoadTTLDuration(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "file"
ttl = "48h"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, cfg.Cache.TTL.Std())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[render]
scle = 500
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestLoadRejectsBadBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidBackend), "got %v", err)
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)

	path = writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "localhost:6379"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestLoadRejectsNonPositiveScale(t *testing.T) {
	path := writeConfig(t, `
[render]
scale = 0
`)
	_, err := Load(path)
	require.Error(t, err)
}
