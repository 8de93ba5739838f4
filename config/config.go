package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Telegram TelegramConfig
	API      APIConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type TelegramConfig struct {
	Token string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	timeoutSec, _ := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bento_client"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000/api"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
