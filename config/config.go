package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP      ServerConfig
	GRPC      ServerConfig
	MySQL     MySQLConfig
	Session   SessionConfig
	Password  PasswordPolicy
	Reporting ReportingConfig
	Admin     AdminConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type MySQLConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	Charset      string
	Collation    string
	MaxOpenConns int
	MaxIdleConns int
}

type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

type ReportingConfig struct {
	APIKey string
}

func (r ReportingConfig) Enabled() bool {
	return r.APIKey != ""
}

type AdminConfig struct {
	Username string
	Password string
	Email    string
}

type LogConfig struct {
	Level  string
	Format string
}

type PasswordPolicy struct {
	MinLength int
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("Password must be at least %d characters long", p.MinLength)
	}
	return nil
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignores error if not found)
	_ = godotenv.Load()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is required")
	}

	port := getIntEnv("DB_PORT", 3306)
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("DB_PORT out of range: %d", port)
	}

	return &Config{
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         port,
			User:         getEnv("DB_USER", "root"),
			Password:     os.Getenv("DB_PASSWORD"),
			Database:     getEnv("DB_NAME", "internship_db"),
			Charset:      getEnv("DB_CHARSET", "utf8mb4"),
			Collation:    getEnv("DB_COLLATION", "utf8mb4_unicode_ci"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret:       sessionSecret,
			TTL:          getDurationEnv("SESSION_TTL", 24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			CookieSecure: getBoolEnv("SESSION_COOKIE_SECURE", false),
		},
		Password: PasswordPolicy{
			MinLength: getIntEnv("PASSWORD_MIN_LENGTH", 6),
		},
		Reporting: ReportingConfig{
			APIKey: strings.TrimSpace(os.Getenv("REPORTING_API_KEY")),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Email:    getEnv("ADMIN_EMAIL", "admin@internship.com"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}, nil
}

// DSN renders the go-sql-driver connection string. parseTime is always on so
// DATE/DATETIME columns scan into time.Time.
func (c *Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.MySQL.User
	mc.Passwd = c.MySQL.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.MySQL.Host, strconv.Itoa(c.MySQL.Port))
	mc.DBName = c.MySQL.Database
	mc.ParseTime = true
	mc.Collation = c.MySQL.Collation
	if c.MySQL.Charset != "" {
		mc.Params = map[string]string{"charset": c.MySQL.Charset}
	}
	return mc.FormatDSN()
}

// MigrationDSN is DSN with multiStatements enabled. It is only used by the
// migrate command; the serving pool never accepts multiple statements.
func (c *Config) MigrationDSN() string {
	mc, err := mysql.ParseDSN(c.DSN())
	if err != nil {
		return c.DSN()
	}
	mc.MultiStatements = true
	return mc.FormatDSN()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
