package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the process environment. A missing file is
// fine in deployed environments where variables are set externally.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// MustGetEnv exits when a required variable is missing.
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s not set in environment variables", key)
	}
	return value
}
