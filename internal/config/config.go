package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	MinIO   MinIOConfig   `mapstructure:"minio"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Export  ExportConfig  `mapstructure:"export"`
	Clamd   ClamdConfig   `mapstructure:"clamd"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int    `mapstructure:"port"`
	InternalSecret string `mapstructure:"internal_secret"`
	InternalBase   string `mapstructure:"internal_base_url"`
}

// SessionConfig 包含编辑会话的令牌与存活配置。
type SessionConfig struct {
	SigningSecret string        `mapstructure:"signing_secret"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// RedisConfig 包含 Redis 连接配置。
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr 拼出 go-redis/asynq 共用的地址。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
}

// GeminiConfig 包含图片编辑所用的远端生成服务配置。
// API Key 只存在于服务端，绝不会下发给编辑会话。
type GeminiConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	Model        string  `mapstructure:"model"`
	RatePerMin   float64 `mapstructure:"rate_per_min"`
	DailyPerUser int     `mapstructure:"daily_per_user"`
}

// ExportConfig 包含导出流水线的渲染参数。
type ExportConfig struct {
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	PresignTTL  time.Duration `mapstructure:"presign_ttl"`
}

// ClamdConfig 包含上传病毒扫描配置，Addr 为空则跳过扫描。
type ClamdConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.internal_base_url", "http://localhost:8080")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "posters")
	v.SetDefault("gemini.model", "gemini-2.5-flash-image")
	v.SetDefault("gemini.rate_per_min", 6.0)
	v.SetDefault("gemini.daily_per_user", 50)
	v.SetDefault("export.settle_delay", 800*time.Millisecond)
	v.SetDefault("export.presign_ttl", 24*time.Hour)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                "API_PORT",
		"api.internal_secret":     "INTERNAL_API_SECRET",
		"api.internal_base_url":   "INTERNAL_API_BASE_URL",
		"session.signing_secret":  "SESSION_SIGNING_SECRET",
		"session.ttl":             "SESSION_TTL",
		"redis.host":              "REDIS_HOST",
		"redis.port":              "REDIS_PORT",
		"minio.endpoint":          "MINIO_ENDPOINT",
		"minio.access_key_id":     "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key": "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":           "MINIO_USE_SSL",
		"minio.bucket":            "MINIO_BUCKET",
		"gemini.api_key":          "GEMINI_API_KEY",
		"gemini.model":            "GEMINI_MODEL",
		"gemini.rate_per_min":     "GEMINI_RATE_PER_MIN",
		"gemini.daily_per_user":   "GEMINI_DAILY_PER_USER",
		"export.settle_delay":     "EXPORT_SETTLE_DELAY",
		"export.presign_ttl":      "EXPORT_PRESIGN_TTL",
		"clamd.addr":              "CLAMD_ADDR",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Session.SigningSecret == "" {
		return errors.New("session signing secret is required")
	}
	if cfg.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if cfg.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	if cfg.Redis.Port <= 0 {
		return errors.New("redis port must be positive")
	}
	if cfg.MinIO.Endpoint == "" {
		return errors.New("minio endpoint is required")
	}
	if cfg.MinIO.AccessKeyID == "" {
		return errors.New("minio access key id is required")
	}
	if cfg.MinIO.SecretAccessKey == "" {
		return errors.New("minio secret access key is required")
	}
	if cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	if cfg.Gemini.Model == "" {
		return errors.New("gemini model is required")
	}
	if cfg.Export.SettleDelay < 0 {
		return errors.New("export settle delay must not be negative")
	}
	return nil
}
