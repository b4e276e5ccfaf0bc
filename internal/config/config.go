// Пакет config — загрузка и валидация конфигурации SWIFT Monitor.
// Источники по возрастанию приоритета: значения по умолчанию,
// YAML-файл (необязательный), переменные окружения с префиксом SM_.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// EnvPrefix — префикс переменных окружения.
const EnvPrefix = "SM"

// Драйверы источника данных.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type ctxKey string

const configContextKey ctxKey = "swift-monitor.config"

// WithContext сохраняет конфигурацию в контексте команды.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

// FromContext возвращает конфигурацию из контекста или nil.
func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// Config содержит все параметры конфигурации SWIFT Monitor.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int `yaml:"port" envconfig:"PORT"`
	// Уровень логирования (debug, info, warn, error)
	LogLevelName string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	// Формат логов (json, text)
	LogFormat string `yaml:"logFormat" envconfig:"LOG_FORMAT"`
	// Префикс всех маршрутов API (например, /api)
	APIPrefix string `yaml:"apiPrefix" envconfig:"API_PREFIX"`

	// LogLevel — разобранный LogLevelName
	LogLevel slog.Level `yaml:"-" ignored:"true"`

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration `yaml:"httpReadTimeout"  envconfig:"HTTP_READ_TIMEOUT"`
	HTTPWriteTimeout time.Duration `yaml:"httpWriteTimeout" envconfig:"HTTP_WRITE_TIMEOUT"`
	HTTPIdleTimeout  time.Duration `yaml:"httpIdleTimeout"  envconfig:"HTTP_IDLE_TIMEOUT"`

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"SHUTDOWN_TIMEOUT"`

	// --- База данных ---

	// Драйвер источника данных: postgres или sqlite
	DBDriver   string `yaml:"dbDriver"   envconfig:"DB_DRIVER"`
	DBHost     string `yaml:"dbHost"     envconfig:"DB_HOST"`
	DBPort     int    `yaml:"dbPort"     envconfig:"DB_PORT"`
	DBName     string `yaml:"dbName"     envconfig:"DB_NAME"`
	DBUser     string `yaml:"dbUser"     envconfig:"DB_USER"`
	DBPassword string `yaml:"dbPassword" envconfig:"DB_PASSWORD"`
	DBSSLMode  string `yaml:"dbSslMode"  envconfig:"DB_SSL_MODE"`
	// Максимальный размер пула соединений
	DBMaxConns int `yaml:"dbMaxConns" envconfig:"DB_MAX_CONNS"`
	// Применять миграции при старте
	DBMigrate bool `yaml:"dbMigrate" envconfig:"DB_MIGRATE"`
	// Путь к файлу SQLite; пусто — база в памяти
	SQLitePath string `yaml:"sqlitePath" envconfig:"SQLITE_PATH"`

	// --- Кэш справочников ---

	ReferenceCacheSize int `yaml:"referenceCacheSize" envconfig:"REFERENCE_CACHE_SIZE"`
	// TTL кэша справочников; 0 — кэш выключен
	ReferenceCacheTTL time.Duration `yaml:"referenceCacheTTL" envconfig:"REFERENCE_CACHE_TTL"`

	// --- Dependency health ---

	DephealthEnabled       bool          `yaml:"dephealthEnabled"       envconfig:"DEPHEALTH_ENABLED"`
	DephealthGroup         string        `yaml:"dephealthGroup"         envconfig:"DEPHEALTH_GROUP"`
	DephealthCheckInterval time.Duration `yaml:"dephealthCheckInterval" envconfig:"DEPHEALTH_CHECK_INTERVAL"`
	DephealthIsEntry       bool          `yaml:"dephealthIsEntry"       envconfig:"DEPHEALTH_ISENTRY"`

	// --- Трассировка ---

	TracingEnabled bool `yaml:"tracingEnabled" envconfig:"TRACING_ENABLED"`
	// Печатать спаны в stdout вместо OTLP-экспорта
	TracingStdout bool `yaml:"tracingStdout" envconfig:"TRACING_STDOUT"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		Port:                   8040,
		LogLevelName:           "info",
		LogFormat:              "json",
		HTTPReadTimeout:        30 * time.Second,
		HTTPWriteTimeout:       60 * time.Second,
		HTTPIdleTimeout:        120 * time.Second,
		ShutdownTimeout:        5 * time.Second,
		DBDriver:               DriverPostgres,
		DBHost:                 "localhost",
		DBPort:                 5432,
		DBName:                 "swift",
		DBUser:                 "swift",
		DBSSLMode:              "disable",
		DBMaxConns:             10,
		ReferenceCacheSize:     64,
		ReferenceCacheTTL:      5 * time.Minute,
		DephealthGroup:         "swift-monitor",
		DephealthCheckInterval: 15 * time.Second,
		DephealthIsEntry:       true,
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл
// (если configFile не пуст), затем переменные окружения SM_*.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора файла конфигурации: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет значения и заполняет производные поля.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("SM_PORT: значение %d вне диапазона 1-65535", c.Port)
	}

	level, err := parseLogLevel(c.LogLevelName)
	if err != nil {
		return fmt.Errorf("SM_LOG_LEVEL: %w", err)
	}
	c.LogLevel = level

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("SM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", c.LogFormat)
	}

	c.APIPrefix = strings.TrimRight(c.APIPrefix, "/")
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		c.APIPrefix = "/" + c.APIPrefix
	}

	for name, d := range map[string]time.Duration{
		"SM_HTTP_READ_TIMEOUT":  c.HTTPReadTimeout,
		"SM_HTTP_WRITE_TIMEOUT": c.HTTPWriteTimeout,
		"SM_HTTP_IDLE_TIMEOUT":  c.HTTPIdleTimeout,
		"SM_SHUTDOWN_TIMEOUT":   c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s: значение должно быть > 0", name)
		}
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("SM_DB_HOST: обязательный параметр для драйвера postgres")
		}
		if c.DBPort < 1 || c.DBPort > 65535 {
			return fmt.Errorf("SM_DB_PORT: значение %d вне диапазона 1-65535", c.DBPort)
		}
		if c.DBMaxConns < 1 {
			return fmt.Errorf("SM_DB_MAX_CONNS: значение должно быть > 0")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("SM_DB_DRIVER: недопустимый драйвер %q, допустимые: postgres, sqlite", c.DBDriver)
	}

	if c.ReferenceCacheSize < 1 {
		return fmt.Errorf("SM_REFERENCE_CACHE_SIZE: значение должно быть > 0")
	}
	if c.ReferenceCacheTTL < 0 {
		return fmt.Errorf("SM_REFERENCE_CACHE_TTL: значение должно быть >= 0")
	}
	if c.DephealthEnabled && c.DephealthCheckInterval <= 0 {
		return fmt.Errorf("SM_DEPHEALTH_CHECK_INTERVAL: значение должно быть > 0")
	}
	return nil
}

// DatabaseDSN возвращает строку подключения PostgreSQL для pgxpool.
func (c *Config) DatabaseDSN() string {
	u := c.databaseURL("postgres")
	q := u.Query()
	q.Set("pool_max_conns", strconv.Itoa(c.DBMaxConns))
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseURL возвращает URL PostgreSQL без параметров пула
// (для проверок зависимостей).
func (c *Config) DatabaseURL() string {
	return c.databaseURL("postgres").String()
}

// MigrateURL возвращает URL для golang-migrate (схема pgx5).
func (c *Config) MigrateURL() string {
	return c.databaseURL("pgx5").String()
}

func (c *Config) databaseURL(scheme string) *url.URL {
	u := &url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
