package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"story-relay/internal/ai"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Бэкенды хранилища.
const (
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config - конфигурация сервера и CLI.
type Config struct {
	Env         string `envconfig:"ENV" default:"development" yaml:"env" env:"ENV" env-default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json" yaml:"log_encoding" env:"LOG_ENCODING" env-default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080" yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`

	// Лимит запросов генерации/продолжения в минуту с одного IP; 0 - без лимита.
	GenerateRateLimit int `envconfig:"GENERATE_RATE_LIMIT" default:"30" yaml:"generate_rate_limit" env:"GENERATE_RATE_LIMIT" env-default:"30"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000" yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`

	// Хранилище
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file" yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"file"`
	DataDir        string `envconfig:"DATA_DIR" default:"data" yaml:"data_dir" env:"DATA_DIR" env-default:"data"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379" yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0" yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"story-relay:" yaml:"redis_key_prefix" env:"REDIS_KEY_PREFIX" env-default:"story-relay:"`
	DatabaseURL    string `envconfig:"DATABASE_URL" yaml:"database_url" env:"DATABASE_URL"`
	RedisPassword  string `ignored:"true" yaml:"-"`

	// AI
	AIClientType  string        `envconfig:"AI_CLIENT_TYPE" default:"openai" yaml:"ai_client_type" env:"AI_CLIENT_TYPE" env-default:"openai"`
	AIAPIKey      string        `envconfig:"DEEPSEEK_API_KEY" yaml:"-" env:"DEEPSEEK_API_KEY"`
	AIBaseURL     string        `envconfig:"DEEPSEEK_API_URL" default:"https://api.deepseek.com/v1" yaml:"ai_base_url" env:"DEEPSEEK_API_URL" env-default:"https://api.deepseek.com/v1"`
	AIModel       string        `envconfig:"AI_MODEL" default:"deepseek-chat" yaml:"ai_model" env:"AI_MODEL" env-default:"deepseek-chat"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s" yaml:"ai_timeout" env:"AI_TIMEOUT" env-default:"60s"`
	AITemperature float64       `envconfig:"AI_TEMPERATURE" default:"0.8" yaml:"ai_temperature" env:"AI_TEMPERATURE" env-default:"0.8"`
	AIMaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"800" yaml:"ai_max_tokens" env:"AI_MAX_TOKENS" env-default:"800"`

	// События
	RabbitMQURL      string `envconfig:"RABBITMQ_URL" yaml:"rabbitmq_url" env:"RABBITMQ_URL"`
	StoryEventsQueue string `envconfig:"STORY_EVENTS_QUEUE" default:"story_events" yaml:"story_events_queue" env:"STORY_EVENTS_QUEUE" env-default:"story_events"`

	// Генератор
	GenreCatalogFile       string `envconfig:"GENRE_CATALOG_FILE" yaml:"genre_catalog_file" env:"GENRE_CATALOG_FILE"`
	GeneratorSeed          int64  `envconfig:"GENERATOR_SEED" default:"0" yaml:"generator_seed" env:"GENERATOR_SEED" env-default:"0"`
	DefaultMaxParticipants int    `envconfig:"DEFAULT_MAX_PARTICIPANTS" default:"10" yaml:"default_max_participants" env:"DEFAULT_MAX_PARTICIPANTS" env-default:"10"`
}

// GetAllowedOrigins разбивает CORS_ALLOWED_ORIGINS по запятой.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// AI возвращает конфигурацию LLM-клиента.
func (c *Config) AI() ai.Config {
	return ai.Config{
		ClientType:  strings.ToLower(c.AIClientType),
		APIKey:      strings.TrimSpace(c.AIAPIKey),
		BaseURL:     c.AIBaseURL,
		Model:       c.AIModel,
		Timeout:     c.AITimeout,
		Temperature: c.AITemperature,
		MaxTokens:   c.AIMaxTokens,
	}
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return errors.New("DATA_DIR must not be empty for file storage")
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for redis storage")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch strings.ToLower(c.AIClientType) {
	case ai.ClientTypeOpenAI, ai.ClientTypeOllama, ai.ClientTypeGemini:
	default:
		return fmt.Errorf("unknown AI_CLIENT_TYPE %q", c.AIClientType)
	}
	if c.DefaultMaxParticipants <= 0 {
		return errors.New("DEFAULT_MAX_PARTICIPANTS must be positive")
	}
	return nil
}

// LoadConfig загружает конфигурацию из .env файла (если есть), окружения и секретов.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}
	return finalize(&cfg)
}

// LoadFile читает YAML-конфиг для CLI. Без файла используется только окружение.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err == nil {
			return finalize(&cfg)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error reading env vars: %w", err)
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	if cfg.AIAPIKey == "" {
		if key, err := ReadSecret("ai_api_key"); err == nil {
			cfg.AIAPIKey = key
		}
	}
	if pass, err := ReadSecret("redis_password"); err == nil {
		cfg.RedisPassword = pass
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
