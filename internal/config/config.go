// Package config загружает настройки awxctl и awxstub.
//
// Порядок источников (от низшего к высшему): значения по умолчанию,
// YAML файл, .env файл, переменные окружения. Флаги командной строки
// применяются поверх вызывающим кодом.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/goawx/internal/logger"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "warn"
	DefaultLogFormat = logger.FormatText

	appDir = "goawx"
)

// Config - настройки клиента awxctl
type Config struct {
	URL       string        `yaml:"url"`
	Token     string        `yaml:"token"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	DBPath    string        `yaml:"db"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Options выбирает файлы, из которых читается конфигурация.
// Пустой File означает DefaultPath(); отсутствие файла по умолчанию не ошибка.
type Options struct {
	File    string
	EnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:    filepath.Join(Dir(), "awxctl.db"),
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Timeout:   DefaultTimeout,
	}
}

// Dir returns the per-user configuration directory (~/.config/goawx).
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appDir)
}

// DefaultPath returns the config file looked up when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load собирает конфигурацию из всех источников
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path, explicit := opts.File, opts.File != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadEnvFile загружает .env, не перезаписывая уже заданные переменные окружения
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v, ok := getEnvStr("AWX_URL"); ok {
		c.URL = v
	}
	if v, ok := getEnvStr("AWX_TOKEN"); ok {
		c.Token = v
	}
	if v, ok := getEnvStr("AWX_USERNAME"); ok {
		c.Username = v
	}
	if v, ok := getEnvStr("AWX_PASSWORD"); ok {
		c.Password = v
	}
	if v, ok := getEnvStr("AWX_DB"); ok {
		c.DBPath = v
	}
	if v, ok := getEnvDur("AWX_TIMEOUT"); ok {
		c.Timeout = v
	}
	if v, ok := getEnvStr("AWX_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := getEnvStr("AWX_LOG_FORMAT"); ok {
		c.LogFormat = v
	}
}

// HasCredentials reports whether a token or a username/password pair is configured.
func (c *Config) HasCredentials() bool {
	return c.Token != "" || (c.Username != "" && c.Password != "")
}

// Validate проверяет адрес сервера, таймаут и настройки логирования.
// Учетные данные не проверяются: они могут прийти из сохраненной сессии.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("config: url is required (set --url, AWX_URL or url in the config file)")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("config: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: url must use http or https, got %q", c.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("config: url %q has no host", c.URL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if c.DBPath == "" {
		return errors.New("config: db path is required")
	}
	if _, err := logger.New(c.LogLevel, c.LogFormat, nil); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ---- env helpers ----

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(s); err == nil {
			return d, true
		}
	}
	return 0, false
}
