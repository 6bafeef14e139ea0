package config

import (
	"errors"
	"fmt"
	"time"
)

const minSecretLength = 16

// ServerConfig - настройки локального AWX stub сервера
type ServerConfig struct {
	Addr          string
	DBPath        string
	JWTSecret     string
	AdminUser     string
	AdminPassword string
	LogLevel      string
	LogFormat     string
	TokenTTL      time.Duration
}

// DefaultServer returns the built-in stub server configuration.
func DefaultServer() *ServerConfig {
	return &ServerConfig{
		Addr:      ":8052",
		DBPath:    "awxstub.db",
		AdminUser: "admin",
		LogLevel:  "info",
		LogFormat: DefaultLogFormat,
		TokenTTL:  24 * time.Hour,
	}
}

// LoadServer читает настройки stub сервера из .env (если есть) и окружения AWXSTUB_*
func LoadServer(envFile string) (*ServerConfig, error) {
	cfg := DefaultServer()
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	if v, ok := getEnvStr("AWXSTUB_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := getEnvStr("AWXSTUB_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvStr("AWXSTUB_JWT_SECRET"); ok {
		cfg.JWTSecret = v
	}
	if v, ok := getEnvStr("AWXSTUB_ADMIN_USER"); ok {
		cfg.AdminUser = v
	}
	if v, ok := getEnvStr("AWXSTUB_ADMIN_PASSWORD"); ok {
		cfg.AdminPassword = v
	}
	if v, ok := getEnvStr("AWXSTUB_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvStr("AWXSTUB_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvDur("AWXSTUB_TOKEN_TTL"); ok {
		cfg.TokenTTL = v
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("server config: listen address is required")
	}
	if c.DBPath == "" {
		return errors.New("server config: db path is required")
	}
	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("server config: jwt secret must be at least %d characters", minSecretLength)
	}
	if c.AdminUser == "" || c.AdminPassword == "" {
		return errors.New("server config: admin user and password are required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("server config: token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}
