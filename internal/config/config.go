// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"playlistbox/internal/model"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config представляет конфигурацию приложения
type Config struct {
	// App Data Directory
	AppDataDir string

	// Каталог для выгрузки плейлистов
	ExportDir string

	// Logging
	LogLevel  string
	LogPath   string
	LogFormat string

	// Database (необязательно)
	DatabaseURL string
	DBDebug     bool
	DBRetry     RetryConfig

	// Строгая проверка элементов: жанр и тема обязательны
	StrictValidation bool

	// Путь к textfile с метриками (необязательно)
	MetricsTextfile string
}

// RetryConfig представляет конфигурацию повторных подключений
type RetryConfig struct {
	MaxRetries int
	Delay      time.Duration
}

// Interface определяет доступ к конфигурации
type Interface interface {
	GetAppDataDir() string
	GetExportDir() string
	GetLogLevel() string
	GetDatabaseURL() string
	GetStrictValidation() bool
	GetMetricsTextfile() string
}

var _ Interface = (*Config)(nil)

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	appDataDir := getEnv("APP_DATA_DIR", "./data")

	config := &Config{
		AppDataDir:  appDataDir,
		ExportDir:   getEnv("EXPORT_DIR", filepath.Join(appDataDir, "playlists")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogPath:     getEnv("LOG_PATH", filepath.Join(appDataDir, "logs", "playlistbox.log")),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DatabaseURL: getEnv("DB_DSN", ""),
		DBDebug:     getEnvBool("DB_DEBUG", false),
		DBRetry: RetryConfig{
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 3),
			Delay:      getEnvDuration("DB_RETRY_DELAY", 2*time.Second),
		},
		StrictValidation: getEnvBool("STRICT_VALIDATION", false),
		MetricsTextfile:  getEnv("METRICS_TEXTFILE", ""),
	}

	// Валидация
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.AppDataDir == "" {
		return fmt.Errorf("APP_DATA_DIR is required")
	}

	if c.ExportDir == "" {
		return fmt.Errorf("EXPORT_DIR is required")
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	if err := model.ValidateEnum("LOG_FORMAT", c.LogFormat, []string{"json", "console"}); err != nil {
		return err
	}

	if c.DatabaseURL != "" && !isSupportedDSN(c.DatabaseURL) {
		return fmt.Errorf("DB_DSN must start with postgres://, postgresql://, sqlite:// or file:")
	}

	if c.DBRetry.MaxRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be positive")
	}

	return nil
}

func isSupportedDSN(dsn string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "sqlite://", "file:"} {
		if strings.HasPrefix(dsn, prefix) {
			return true
		}
	}
	return false
}

// GetAppDataDir возвращает директорию данных приложения
func (c *Config) GetAppDataDir() string {
	return c.AppDataDir
}

// GetExportDir возвращает каталог выгрузки плейлистов
func (c *Config) GetExportDir() string {
	return c.ExportDir
}

// GetLogLevel возвращает уровень логирования
func (c *Config) GetLogLevel() string {
	return c.LogLevel
}

// GetDatabaseURL возвращает DSN базы данных
func (c *Config) GetDatabaseURL() string {
	return c.DatabaseURL
}

// GetStrictValidation возвращает режим строгой проверки элементов
func (c *Config) GetStrictValidation() bool {
	return c.StrictValidation
}

// GetMetricsTextfile возвращает путь к файлу метрик
func (c *Config) GetMetricsTextfile() string {
	return c.MetricsTextfile
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
