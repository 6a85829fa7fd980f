package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	GigaChat  GigaChatConfig
	Knowledge KnowledgeConfig
	Search    SearchConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
	// Timeout bounds every provider call; a timed-out call degrades to the
	// local-only response path.
	Timeout time.Duration
}

// KnowledgeConfig selects where the record store is loaded from at startup:
// a JSON document on disk ("file") or the seeded Postgres table ("postgres").
type KnowledgeConfig struct {
	Source string
	Path   string
}

type SearchConfig struct {
	TopK int
	// StrongThreshold and MediumThreshold are the confidence-gate breakpoints
	// on the uncapped score scale.
	StrongThreshold float64
	MediumThreshold float64
	// MaxPromptRecords bounds how many records are enumerated in the
	// provider candidate-selection prompt.
	MaxPromptRecords int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine; environment variables are used directly
	// (useful for Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	providerTimeout, _ := strconv.Atoi(getEnv("GIGACHAT_TIMEOUT_SECONDS", "10"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pericare"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
			Timeout:            time.Duration(providerTimeout) * time.Second,
		},
		Knowledge: KnowledgeConfig{
			Source: getEnv("KNOWLEDGE_SOURCE", "file"),
			Path:   getEnv("KNOWLEDGE_PATH", "data/postpartum_qa.json"),
		},
		Search: SearchConfig{
			TopK:             getEnvInt("SEARCH_TOP_K", 3),
			StrongThreshold:  getEnvFloat("SEARCH_STRONG_THRESHOLD", 0.7),
			MediumThreshold:  getEnvFloat("SEARCH_MEDIUM_THRESHOLD", 0.3),
			MaxPromptRecords: getEnvInt("SEARCH_MAX_PROMPT_RECORDS", 200),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
