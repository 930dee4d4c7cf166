package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	ServerURL  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	UploadDir  string
}

func Load() *Config {
	// Optional .env for local development; real env always wins.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerURL:  getEnv("SERVER_URL", "http://localhost:8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "chirp"),
		DBPassword: getEnv("DB_PASSWORD", "chirp_dev_password"),
		DBName:     getEnv("DB_NAME", "chirp"),
		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}
