package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "ensemble_model.yaml", cfg.Model.Path)
	assert.Equal(t, "xgb", cfg.Model.ExplainMember)
	assert.True(t, cfg.Model.IncludeConfidence)
	assert.Equal(t, []string{"*"}, cfg.Cors.AllowOrigins)
	assert.False(t, cfg.Database.AuditEnabled)
	assert.Equal(t, "postgres", cfg.Database.AuditDriver)
	assert.False(t, cfg.Redis.CacheEnabled)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_PATH", "/models/bundle.json")
	t.Setenv("EXPLAIN_MEMBER", "rf")
	t.Setenv("RESPONSE_INCLUDE_CONFIDENCE", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("AUDIT_DRIVER", "SQLite")
	t.Setenv("AUDIT_SQLITE_PATH", "/var/lib/liver/audit.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/models/bundle.json", cfg.Model.Path)
	assert.Equal(t, "rf", cfg.Model.ExplainMember)
	assert.False(t, cfg.Model.IncludeConfidence)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Cors.AllowOrigins)
	assert.True(t, cfg.Redis.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "sqlite", cfg.Database.AuditDriver)
	assert.Equal(t, "/var/lib/liver/audit.db", cfg.Database.SQLitePath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
		{"bad ttl", map[string]string{"CACHE_TTL": "ten minutes"}},
		{"bad bool", map[string]string{"AUDIT_ENABLED": "maybe"}},
		{"audit without host", map[string]string{"AUDIT_ENABLED": "true"}},
		{"unknown audit driver", map[string]string{"AUDIT_ENABLED": "true", "AUDIT_DRIVER": "mysql"}},
		{"cache without host", map[string]string{"CACHE_ENABLED": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
