package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"gramkosh/internal/logger"
)

// Config holds database connection settings.
type Config struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// NewConfig reads database settings from the environment, loading .env first
// when present.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using environment variables")
	}

	return &Config{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnv("DB_PORT", "5432"),
		User:           getEnv("DB_USER", "gramkosh"),
		Password:       getEnv("DB_PASSWORD", "gramkosh"),
		DBName:         getEnv("DB_NAME", "gramkosh"),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}, nil
}

// DSN returns the keyword/value PostgreSQL connection string used by GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres:// connection URL used by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
