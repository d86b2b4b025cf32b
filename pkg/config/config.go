package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Keys       KeysConfig
	Client     ClientConfig
	Perplexity PerplexityConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type DatabaseConfig struct {
	Path string
}

type KeysConfig struct {
	// Path of the flat file holding API key records.
	Path string
}

type ClientConfig struct {
	URL string
}

type PerplexityConfig struct {
	BaseURL string
	Model   string
}

var AppConfig *Config

// Load loads configuration from .env file and environment variables
func Load() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 15),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./homescope.db"),
		},
		Keys: KeysConfig{
			Path: getEnv("API_KEYS_FILE", "./api_keys.env"),
		},
		Client: ClientConfig{
			URL: getEnv("CLIENT_URL", "http://localhost:5173"),
		},
		Perplexity: PerplexityConfig{
			BaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
			Model:   getEnv("PERPLEXITY_MODEL", "sonar-pro"),
		},
	}

	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
