package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Privacy  PrivacyConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	SyncTopic          string
	UploadDir          string
}

type DatabaseConfig struct {
	Connection string
}

type LLMConfig struct {
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Enabled        bool
}

// PrivacyConfig holds the process-wide defaults used when a user has no
// explicit settings row.
type PrivacyConfig struct {
	SendNotes   bool
	SendDigests bool
	SendDocs    bool
	SendRawLogs bool
	PIIMasking  bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			SyncTopic:          getEnv("SYNC_TOPIC_NAME", "SYNC_CONTENT"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		LLM: LLMConfig{
			BaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:         getEnv("LLM_API_KEY", ""),
			ChatModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			Enabled:        getEnvAsBool("LLM_ENABLED", true),
		},
		Privacy: PrivacyConfig{
			SendNotes:   getEnvAsBool("SEND_NOTES", true),
			SendDigests: getEnvAsBool("SEND_DIGESTS", true),
			SendDocs:    getEnvAsBool("SEND_DOCS", false),
			SendRawLogs: getEnvAsBool("SEND_RAW_LOGS", false),
			PIIMasking:  getEnvAsBool("PII_MASKING", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
