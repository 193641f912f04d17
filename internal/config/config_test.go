package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{Paths: []string{t.TempDir()}})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "content/site.yaml", cfg.Content.Source)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "/.netlify/functions/contact-form", cfg.Contact.Endpoint)
	assert.Equal(t, 5, cfg.Contact.RateLimit)
	assert.Equal(t, time.Minute, cfg.Contact.RateLimitEvery)
	assert.True(t, cfg.Contact.RelayEnabled)
	assert.Equal(t, "default", cfg.Theme.Name)
	assert.Equal(t, "/assets", cfg.Site.AssetPrefix)
	assert.Equal(t, "https://spiceprogram.org/", cfg.Site.CreditURL)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cmsfront.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  addr: ":9000"
content:
  source: https://cms.example.org/site.json
  locales: [en, fi]
cache:
  type: redis
  ttl: 30s
redis:
  host: cache.internal
log:
  format: json
`), 0o644))

	t.Setenv("CMSFRONT_LOG_LEVEL", "debug")
	t.Setenv("CMSFRONT_CONTACT_RATE_LIMIT", "2")

	cfg, err := Load(Options{Paths: []string{dir}})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "https://cms.example.org/site.json", cfg.Content.Source)
	assert.Equal(t, []string{"en", "fi"}, cfg.Content.Locales)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Contact.RateLimit)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Cache:   CacheConfig{Type: "memcached"},
		Contact: ContactConfig{RateLimit: -1},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.source is required")
	assert.Contains(t, err.Error(), `cache.type "memcached"`)
	assert.Contains(t, err.Error(), "contact.rate_limit must not be negative")
	assert.Contains(t, err.Error(), "contact.endpoint is required")
}
