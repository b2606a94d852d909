package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DBDriverOracle   = "oracle"
	DBDriverPostgres = "pgx"

	LLMProviderOpenAI = "openai"
	LLMProviderOllama = "ollama"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	Logger  LoggerConfig
	DB      DBConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Payment PaymentConfig
	Credits CreditsConfig
	Cache   CacheConfig
}

type AppConfig struct {
	ToolName      string
	PublicBaseURL string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type DBConfig struct {
	Driver       string
	DSN          string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LLMConfig struct {
	Provider string
	Server   string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Product is one purchasable credit pack.
type Product struct {
	Credits    int    `mapstructure:"credits"`
	PriceCents int    `mapstructure:"price_cents"`
	Currency   string `mapstructure:"currency"`
}

type PaymentConfig struct {
	APIKey        string
	APIURL        string
	WebhookSecret string
	// ProductIDs maps a catalog key to the payment provider's product id.
	ProductIDs map[string]string
	Catalog    map[string]Product
	Timeout    time.Duration
}

type CreditsConfig struct {
	FreeTrialLimit int
}

type CacheConfig struct {
	InterviewTTL time.Duration
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":              "SERVER_PORT",
	"logger.level":             "LOG_LEVEL",
	"logger.env":               "ENV",
	"db.driver":                "DB_DRIVER",
	"db.dsn":                   "DATABASE_URL",
	"db.host":                  "DB_HOST",
	"db.port":                  "DB_PORT",
	"db.user":                  "DB_USER",
	"db.password":              "DB_PASSWORD",
	"db.name":                  "DB_NAME",
	"redis.address":            "REDIS_ADDRESS",
	"redis.password":           "REDIS_PASSWORD",
	"redis.db":                 "REDIS_DB",
	"llm.provider":             "LLM_PROVIDER",
	"llm.server":               "LLM_PROXY_URL",
	"llm.api_key":              "LLM_PROXY_KEY",
	"llm.model":                "LLM_MODEL",
	"llm.timeout":              "LLM_TIMEOUT",
	"payment.api_key":          "CREEM_API_KEY",
	"payment.api_url":          "CREEM_API_URL",
	"payment.webhook_secret":   "CREEM_WEBHOOK_SECRET",
	"payment.product_ids":      "CREEM_PRODUCT_IDS",
	"credits.free_trial_limit": "FREE_TRIAL_LIMIT",
	"app.tool_name":            "TOOL_NAME",
	"app.public_base_url":      "PUBLIC_BASE_URL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.tool_name", "ai-interviewer")
	v.SetDefault("app.public_base_url", "")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 20*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("db.driver", DBDriverOracle)
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("llm.provider", LLMProviderOpenAI)
	v.SetDefault("llm.server", "https://llm-proxy.densematrix.ai")
	v.SetDefault("llm.model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("payment.api_url", "https://api.creem.io")
	v.SetDefault("payment.timeout", 30*time.Second)
	v.SetDefault("payment.product_ids", map[string]string{})
	v.SetDefault("payment.catalog", map[string]interface{}{
		"starter":   map[string]interface{}{"credits": 10, "price_cents": 499, "currency": "USD"},
		"pro":       map[string]interface{}{"credits": 50, "price_cents": 999, "currency": "USD"},
		"unlimited": map[string]interface{}{"credits": 999, "price_cents": 1999, "currency": "USD"},
	})

	v.SetDefault("credits.free_trial_limit", 1)
	v.SetDefault("cache.interview_ttl", time.Hour)
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// The config file is optional; environment variables alone are enough.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	catalog := map[string]Product{}
	if err := v.UnmarshalKey("payment.catalog", &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse payment.catalog: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			ToolName:      v.GetString("app.tool_name"),
			PublicBaseURL: v.GetString("app.public_base_url"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		DB: DBConfig{
			Driver:       v.GetString("db.driver"),
			DSN:          v.GetString("db.dsn"),
			Host:         v.GetString("db.host"),
			Port:         v.GetInt("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			DBName:       v.GetString("db.name"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider: v.GetString("llm.provider"),
			Server:   v.GetString("llm.server"),
			APIKey:   v.GetString("llm.api_key"),
			Model:    v.GetString("llm.model"),
			Timeout:  v.GetDuration("llm.timeout"),
		},
		Payment: PaymentConfig{
			APIKey:        v.GetString("payment.api_key"),
			APIURL:        v.GetString("payment.api_url"),
			WebhookSecret: v.GetString("payment.webhook_secret"),
			// Accepts either a YAML mapping or a JSON object string from CREEM_PRODUCT_IDS.
			ProductIDs: v.GetStringMapString("payment.product_ids"),
			Catalog:    catalog,
			Timeout:    v.GetDuration("payment.timeout"),
		},
		Credits: CreditsConfig{
			FreeTrialLimit: v.GetInt("credits.free_trial_limit"),
		},
		Cache: CacheConfig{
			InterviewTTL: v.GetDuration("cache.interview_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	switch c.DB.Driver {
	case DBDriverOracle, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	switch c.LLM.Provider {
	case LLMProviderOpenAI, LLMProviderOllama:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	// 최초 접속 기기는 항상 무료 1회를 받는다
	if c.Credits.FreeTrialLimit < 1 {
		return fmt.Errorf("credits.free_trial_limit must be at least 1, got %d", c.Credits.FreeTrialLimit)
	}
	for key, product := range c.Payment.Catalog {
		if product.Credits <= 0 {
			return fmt.Errorf("payment.catalog.%s: credits must be positive", key)
		}
		if product.PriceCents < 0 {
			return fmt.Errorf("payment.catalog.%s: price_cents must not be negative", key)
		}
	}
	return nil
}

// PaymentConfigured reports whether checkout sessions can be opened.
func (c PaymentConfig) PaymentConfigured() bool {
	return c.APIKey != ""
}

// GetDSN returns DSN when set, otherwise builds one for the configured driver.
func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		User: url.UserPassword(c.User, c.Password),
		Host: fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path: "/" + c.DBName,
	}
	switch c.Driver {
	case DBDriverPostgres:
		u.Scheme = "postgres"
		u.RawQuery = "sslmode=disable"
	default:
		u.Scheme = "oracle"
	}
	return u.String()
}
