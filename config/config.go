package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	AWSRegion         string
	S3Bucket          string
	GeminiAPIKey      string
	GeminiModel       string
	OracleTimeoutSecs int
	MatchFanoutLimit  int
	Debug             bool
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET_NAME", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", ""),
		OracleTimeoutSecs: getEnvAsInt("ORACLE_TIMEOUT_SECONDS", 30),
		MatchFanoutLimit:  getEnvAsInt("MATCH_FANOUT_LIMIT", 8),
		Debug:             getEnv("DEBUG", "") == "true",
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}
