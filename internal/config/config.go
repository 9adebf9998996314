package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	LLM    LLMConfig
	JWT    JWTConfig
	Logger LoggerConfig
	Cache  CacheConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	// Driver is "oracle" (go-ora) or "postgres" (pgx).
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

// LLMConfig selects and tunes the model used to score submissions.
type LLMConfig struct {
	Provider    string // googleai, openai or ollama
	APIKey      string
	Model       string
	ServerURL   string
	Timeout     time.Duration
	Temperature float64
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CacheConfig struct {
	SolutionTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "oracle")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.name", "FREEPDB1")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("server.body_limit", 20*1024*1024)
	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-1.5-flash")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", 30)
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("jwt.access_token_ttl", "24h")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("cache.solution_ttl", "168h")
}

// LoadConfig reads config.yaml (optional) and APP_* environment overrides.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("db.driver")),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: v.GetDuration("server.write_timeout") * time.Second,
			IdleTimeout:  v.GetDuration("server.idle_timeout") * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			APIKey:      v.GetString("llm.api_key"),
			Model:       v.GetString("llm.model"),
			ServerURL:   v.GetString("llm.server_url"),
			Timeout:     v.GetDuration("llm.timeout") * time.Second,
			Temperature: v.GetFloat64("llm.temperature"),
		},
		JWT: JWTConfig{
			SecretKey:      v.GetString("jwt.secret_key"),
			AccessTokenTTL: v.GetDuration("jwt.access_token_ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Cache: CacheConfig{
			SolutionTTL: v.GetDuration("cache.solution_ttl"),
		},
	}

	// Provider-specific key variables take effect when no APP_LLM_API_KEY is set.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "googleai":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "oracle", "postgres":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	switch c.LLM.Provider {
	case "googleai", "openai", "ollama":
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required")
	}
	return nil
}

// GetDSN returns the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == "postgres" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
			c.DB.SSLMode,
		)
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
