package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env      string `validate:"required"`
	LogLevel string `validate:"required,oneof=trace debug info warn error fatal panic disabled"`

	DBDriver   string `validate:"required,oneof=postgres postgresql pgx"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBHost     string `validate:"required"`
	DBPort     int    `validate:"required,min=1,max=65535"`
	DBName     string `validate:"required"`
	DBSSLMode  string `validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	DBEcho     bool

	// RedisHost left empty disables the language cache.
	RedisHost        string
	RedisPort        string `validate:"required_with=RedisHost"`
	RedisPassword    string
	RedisDB          int `validate:"min=0"`
	LanguageCacheTTL time.Duration

	Seed int64
}

// LoadConfig reads the given env files (".env" when none are given) into the
// process environment and builds a validated Config from it.
func LoadConfig(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using system environment variables")
	}

	dbPort, err := getEnvInt("DATABASE_PORT", 5432)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	echo, err := strconv.ParseBool(getEnv("DATABASE_ECHO", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_ECHO: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("LANGUAGE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LANGUAGE_CACHE_TTL: %w", err)
	}
	seed, err := strconv.ParseInt(getEnv("SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBDriver:         getEnv("DATABASE_DRIVER", "postgres"),
		DBUser:           getEnv("POSTGRES_USER", "testuser"),
		DBPassword:       getEnv("POSTGRES_PASSWORD", "testpassword"),
		DBHost:           getEnv("DATABASE_HOST", "localhost"),
		DBPort:           dbPort,
		DBName:           getEnv("POSTGRES_DB", "testuser"),
		DBSSLMode:        getEnv("DATABASE_SSLMODE", "disable"),
		DBEcho:           echo,
		RedisHost:        getEnv("REDIS_HOST", ""),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          redisDB,
		LanguageCacheTTL: ttl,
		Seed:             seed,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// CacheEnabled reports whether a Redis host was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
