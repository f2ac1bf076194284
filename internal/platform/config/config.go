package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "defaultsecret"
)

type Config struct {
	APIPort string
	AppEnv  string

	JWTKey       []byte
	CookieSecure bool
	BcryptCost   int

	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBConnStr     string
	DBMigrate     bool

	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	ListingEventsQueue string

	CORSAllowedOrigins []string
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "5000"),
		AppEnv:             getEnv("APP_ENV", EnvDevelopment),
		JWTKey:             []byte(getEnv("JWT_SECRET", defaultJWTSecret)),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "marketplace_db"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		ListingEventsQueue: getEnv("LISTING_EVENTS_QUEUE", "product_listed_events"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	var err error
	if cfg.CookieSecure, err = getEnvAsBool("COOKIE_SECURE", true); err != nil {
		return nil, err
	}
	if cfg.DBMigrate, err = getEnvAsBool("DB_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if _, err = strconv.Atoi(cfg.APIPort); err != nil {
		return nil, fmt.Errorf("API_PORT must be a number, got %q", cfg.APIPort)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode
	return cfg, nil
}

func (c *Config) validate() error {
	if c.StorageDriver != StorageDriverPostgres && c.StorageDriver != StorageDriverMemory {
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMemory, c.StorageDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.IsProduction() && string(c.JWTKey) == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if len(c.JWTKey) == 0 {
		return errors.New("JWT_SECRET must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// RedisEnabled reports whether listing events should be published.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, valueStr)
	}
	return value, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
