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
	Ai       AIConfig
	Rag      RagConfig
	Vision   VisionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	UploadDir          string
	ExtractTopic       string // background answer-refresh topic
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "dashscope" or "ollama"
	LLMModel          string // e.g. "qwen-flash", "llama3"
	EmbeddingProvider string // "dashscope" or "ollama"
	EmbeddingModel    string // e.g. "text-embedding-v1", "nomic-embed-text"
	DashScopeAPIKey   string
	DashScopeBaseURL  string
	OllamaBaseURL     string
}

type RagConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int // per-field retrieval depth
	ModuleTopK   int // module-summary retrieval depth
	ChatTopK     int // chat context retrieval depth
}

type VisionConfig struct {
	Model          string
	TimeoutSeconds int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			UploadDir:          getEnv("UPLOAD_DIR", os.TempDir()),
			ExtractTopic:       getEnv("EXTRACT_ANSWERS_TOPIC_NAME", "EXTRACT_ANSWERS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "dashscope"),
			LLMModel:          getEnv("LLM_MODEL", "qwen-flash"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "dashscope"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-v1"),
			DashScopeAPIKey:   getEnv("DASHSCOPE_API_KEY", ""),
			DashScopeBaseURL:  getEnv("DASHSCOPE_BASE_URL", "https://dashscope.aliyuncs.com/compatible-mode/v1"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Rag: RagConfig{
			ChunkSize:    getEnvAsInt("RAG_CHUNK_SIZE", 500),
			ChunkOverlap: getEnvAsInt("RAG_CHUNK_OVERLAP", 50),
			TopK:         getEnvAsInt("RAG_TOP_K", 3),
			ModuleTopK:   getEnvAsInt("RAG_MODULE_TOP_K", 5),
			ChatTopK:     getEnvAsInt("RAG_CHAT_TOP_K", 2),
		},
		Vision: VisionConfig{
			Model:          getEnv("VISION_MODEL", "qwen-vl-max"),
			TimeoutSeconds: getEnvAsInt("VISION_TIMEOUT_SECONDS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
