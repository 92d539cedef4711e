package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configFileEnv = "CONFIG_FILE"

	DefaultAPIKey = "changeme"
)

// Config 服务运行所需的全部配置，启动时加载一次后显式传递给各组件
type Config struct {
	Port         string        `yaml:"port"`
	AppEnv       string        `yaml:"appEnv"`
	DatabaseURL  string        `yaml:"databaseUrl"`
	DataDir      string        `yaml:"dataDir"`
	APIKey       string        `yaml:"apiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	CORSOrigins  []string      `yaml:"corsOrigins"`
	CacheSize    int           `yaml:"cacheSize"`
	FeedCacheTTL time.Duration `yaml:"feedCacheTtl"`
}

func defaults() Config {
	return Config{
		Port:         "8000",
		AppEnv:       "development",
		DataDir:      "./data",
		APIKey:       DefaultAPIKey,
		BaseURL:      "http://localhost:8000",
		CORSOrigins:  []string{"*"},
		CacheSize:    500,
		FeedCacheTTL: 30 * time.Second,
	}
}

// Load 读取配置：默认值 -> YAML 文件 (CONFIG_FILE) -> 环境变量
// .env 由调用方在此之前通过 godotenv 加载
func Load() (*Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "sqlite://" + filepath.Join(cfg.DataDir, "staywise.db")
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.AppEnv = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}
	if v := os.Getenv("CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid CACHE_SIZE %q", v)
		}
		c.CacheSize = n
	}
	if v := os.Getenv("FEED_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FEED_CACHE_TTL %q: %w", v, err)
		}
		c.FeedCacheTTL = d
	}
	return nil
}

// IsProduction 是否以生产模式运行
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "prod", "production":
		return true
	}
	return false
}

// UsesDefaultAPIKey 写接口是否仍在使用默认密钥
func (c *Config) UsesDefaultAPIKey() bool {
	return c.APIKey == DefaultAPIKey
}
