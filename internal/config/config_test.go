package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SIGNING_SECRET", "test-secret")
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio123")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api port = %d", cfg.API.Port)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr())
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
	if cfg.Export.SettleDelay != 800*time.Millisecond {
		t.Errorf("settle delay = %v", cfg.Export.SettleDelay)
	}
	if cfg.MinIO.Bucket != "posters" {
		t.Errorf("bucket = %q", cfg.MinIO.Bucket)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("EXPORT_SETTLE_DELAY", "1500ms")
	t.Setenv("GEMINI_DAILY_PER_USER", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api port = %d", cfg.API.Port)
	}
	if cfg.Redis.Addr() != "redis.internal:6380" {
		t.Errorf("redis addr = %q", cfg.Redis.Addr())
	}
	if cfg.Export.SettleDelay != 1500*time.Millisecond {
		t.Errorf("settle delay = %v", cfg.Export.SettleDelay)
	}
	if cfg.Gemini.DailyPerUser != 10 {
		t.Errorf("daily per user = %d", cfg.Gemini.DailyPerUser)
	}
}

func TestLoadRequiresSigningSecret(t *testing.T) {
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("SESSION_SIGNING_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without signing secret")
	}
}
