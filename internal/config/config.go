package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// defaultSecret 未设置 APP_SECRET 时使用
const defaultSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`
	Port      string `envconfig:"PORT" default:"5005" validate:"required,numeric"`
	AppSecret string `envconfig:"APP_SECRET" validate:"required,min=16"`
	SiteName  string `envconfig:"SITE_NAME" default:"Filmsök"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`

	// OMDb 搜索接口
	OMDbBaseURL string        `envconfig:"OMDB_BASE_URL" default:"http://omdbapi.com" validate:"required,url"`
	OMDbAPIKey  string        `envconfig:"OMDB_API_KEY" default:"416ed51a" validate:"required"`
	OMDbTimeout time.Duration `envconfig:"OMDB_TIMEOUT" default:"10s" validate:"gt=0"`

	// 标题排序使用的语言（BCP 47）
	SortLocale string `envconfig:"SORT_LOCALE" default:"sv" validate:"required,bcp47_language_tag"`

	SearchCacheSize int           `envconfig:"SEARCH_CACHE_SIZE" default:"500" validate:"gt=0"`
	SearchCacheTTL  time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"10m" validate:"gt=0"`
	ResultTTL       time.Duration `envconfig:"RESULT_TTL" default:"30m" validate:"gt=0"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"5m" validate:"gt=0"`
}

// Load 加载配置：.env → 环境变量 → 校验
func Load() (*Config, error) {
	// .env 不存在时直接用系统环境变量
	_ = godotenv.Load()

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config error: %w", err)
	}
	if cfg.AppSecret == "" {
		cfg.AppSecret = defaultSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置项
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("load config error: %w", err)
	}
	return nil
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecret 生产环境不应使用默认密钥
func (c *Config) UsesDefaultSecret() bool {
	return c.AppSecret == defaultSecret
}
