package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"
)

const (
	defaultPort      = 5000
	defaultTokenTTL  = 72 * time.Hour
	defaultLogLevel  = "info"
	defaultDatabase  = "bookies"
	envDatabaseURI   = "DB_URI"
	envPort          = "PORT"
	envTokenSecret   = "ACCESS_TOKEN_SECRET"
	envTokenExpiry   = "JWT_EXPIRES_IN"
	envLogLevel      = "LOG_LEVEL"
	envAllowedOrigin = "CORS_ALLOW_ORIGINS"
)

type Config struct {
	Database         DatabaseConfig   `json:"database"`
	JWTSecret        string           `json:"jwt_secret"`
	JWTExpiresIn     string           `json:"jwt_expires_in"`
	Port             int              `json:"port"`
	LogConfig        logger.LogConfig `json:"log_config"`
	CORSAllowOrigins []string         `json:"cors_allow_origins"`

	JWTTTL time.Duration `json:"-"`
}

type DatabaseConfig struct {
	DSN          string `json:"dsn"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Password     string `json:"password"`
	DBName       string `json:"dbname"`
	SSLMode      string `json:"sslmode"`
	MaxOpenConns int    `json:"max_open_conns"`
}

// Load reads the optional json config at path, then overlays environment
// variables (a local .env file is honoured when present).
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envDatabaseURI); ok && v != "" {
		cfg.Database.DSN = v
	}
	if v, ok := os.LookupEnv(envPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envPort, err)
		}
		cfg.Port = port
	}
	if v, ok := os.LookupEnv(envTokenSecret); ok && v != "" {
		cfg.JWTSecret = v
	}
	if v, ok := os.LookupEnv(envTokenExpiry); ok && v != "" {
		cfg.JWTExpiresIn = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogConfig.Level = v
	}
	if v, ok := os.LookupEnv(envAllowedOrigin); ok && v != "" {
		cfg.CORSAllowOrigins = strings.Split(v, ",")
	}
	return nil
}

func finalize(cfg *Config) error {
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return fmt.Errorf("database dsn is required (%s)", envDatabaseURI)
	}
	if cfg.Database.DSN == "" && cfg.Database.DBName == "" {
		cfg.Database.DBName = defaultDatabase
	}
	if cfg.Database.Host != "" && cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (%s)", envTokenSecret)
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	ttl, err := ParseExpiry(cfg.JWTExpiresIn)
	if err != nil {
		return err
	}
	cfg.JWTTTL = ttl
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = defaultLogLevel
	}
	if cfg.LogConfig.File == "" {
		cfg.LogConfig.Console = true
	}
	return nil
}

// ParseExpiry accepts Go durations ("90m", "12h"), a day suffix ("7d") or a
// bare number of seconds. Empty means the default.
func ParseExpiry(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultTokenTTL, nil
	}
	var ttl time.Duration
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		ttl = time.Duration(secs) * time.Second
	} else if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid token expiry %q", value)
		}
		ttl = time.Duration(n) * 24 * time.Hour
	} else {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid token expiry %q: %w", value, err)
		}
		ttl = parsed
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("token expiry must be positive, got %q", value)
	}
	return ttl, nil
}
