package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAccess         = "account"
	defaultQueryTimeout   = 5 * time.Second
	defaultExecuteTimeout = 10 * time.Second
	defaultServerAddr     = ":8080"
)

// Provider is the read-only view of the configuration that the rest of the
// application depends on. Tests can satisfy it with a small stub.
type Provider interface {
	GetDBURL() string
	GetDBUser() string
	GetDBPass() string
	GetDBNs() string
	GetDBDb() string
	GetDBAccess() string
	GetDBQueryTimeout() time.Duration
	GetDBExecuteTimeout() time.Duration
	GetSessionSecret() string
	GetServerAddr() string
	GetAppBaseURL() string
	GetSecureCookies() bool
}

// Config holds all configuration for the application.
type Config struct {
	DBUrl            string
	DBNs             string
	DBDb             string
	DBUser           string
	DBPass           string
	DBAccess         string
	DBQueryTimeout   time.Duration
	DBExecuteTimeout time.Duration
	SessionSecret    string
	ServerAddr       string
	AppBaseURL       string
	SecureCookies    bool
}

var _ Provider = (*Config)(nil)

// New loads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment without
// touching any .env file.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBUrl:         os.Getenv("SURREAL_URL"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
		DBNs:          os.Getenv("SURREAL_NS"),
		DBDb:          os.Getenv("SURREAL_DB"),
		DBAccess:      envOr("SURREAL_ACCESS", defaultAccess),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		ServerAddr:    envOr("SERVER_ADDR", defaultServerAddr),
		AppBaseURL:    os.Getenv("APP_BASE_URL"),
	}

	var err error
	if cfg.DBQueryTimeout, err = durationEnv("DB_QUERY_TIMEOUT", defaultQueryTimeout); err != nil {
		return nil, err
	}
	if cfg.DBExecuteTimeout, err = durationEnv("DB_EXECUTE_TIMEOUT", defaultExecuteTimeout); err != nil {
		return nil, err
	}
	if raw := os.Getenv("SECURE_COOKIES"); raw != "" {
		if cfg.SecureCookies, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIES value %q: %w", raw, err)
		}
	}

	var missing []string
	for key, val := range map[string]string{
		"SURREAL_URL":    cfg.DBUrl,
		"SURREAL_NS":     cfg.DBNs,
		"SURREAL_DB":     cfg.DBDb,
		"SESSION_SECRET": cfg.SessionSecret,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %s", key, d)
	}
	return d, nil
}

func (c *Config) GetDBURL() string                   { return c.DBUrl }
func (c *Config) GetDBUser() string                  { return c.DBUser }
func (c *Config) GetDBPass() string                  { return c.DBPass }
func (c *Config) GetDBNs() string                    { return c.DBNs }
func (c *Config) GetDBDb() string                    { return c.DBDb }
func (c *Config) GetDBAccess() string                { return c.DBAccess }
func (c *Config) GetDBQueryTimeout() time.Duration   { return c.DBQueryTimeout }
func (c *Config) GetDBExecuteTimeout() time.Duration { return c.DBExecuteTimeout }
func (c *Config) GetSessionSecret() string           { return c.SessionSecret }
func (c *Config) GetServerAddr() string              { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string              { return c.AppBaseURL }
func (c *Config) GetSecureCookies() bool             { return c.SecureCookies }
