package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Rules    RulesConfig
	Cache    CacheConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RulesConfig holds the film/user validation thresholds.
type RulesConfig struct {
	EarliestRelease time.Time
	MaxDescription  int
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type HTTPConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

const (
	DefaultEarliestRelease = "1895-12-28"
	DefaultMaxDescription  = 200
)

// DefaultRules returns the thresholds used when nothing is configured.
func DefaultRules() RulesConfig {
	earliest, _ := time.Parse(DateLayout, DefaultEarliestRelease)
	return RulesConfig{
		EarliestRelease: earliest,
		MaxDescription:  DefaultMaxDescription,
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "filmorate")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("FILM_EARLIEST_RELEASE", DefaultEarliestRelease)
	viper.SetDefault("FILM_MAX_DESCRIPTION", DefaultMaxDescription)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	viper.AutomaticEnv()

	earliest, err := time.Parse(DateLayout, viper.GetString("FILM_EARLIEST_RELEASE"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILM_EARLIEST_RELEASE: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Rules: RulesConfig{
			EarliestRelease: earliest,
			MaxDescription:  viper.GetInt("FILM_MAX_DESCRIPTION"),
		},
		Cache: CacheConfig{
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASS"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			TTL:           viper.GetDuration("CACHE_TTL"),
		},
		HTTP: HTTPConfig{
			CORSOrigins:       splitList(viper.GetString("CORS_ORIGINS")),
			RateLimitRequests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
	}

	return config, nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "no such file or directory")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
