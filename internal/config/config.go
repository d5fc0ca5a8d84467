package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AppConfig holds runtime settings. Values come from the environment (an
// optional .env file is loaded first) and fall back to defaults.
type AppConfig struct {
	LogLevel           string
	Port               string
	MaxUploadSizeBytes int64
	OutputExtension    string
	SaveDirName        string
	ErrorDirName       string
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	maxUploadMB := getEnvInt("MAX_UPLOAD_SIZE_MB", 32)

	return &AppConfig{
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", "8080"),
		MaxUploadSizeBytes: int64(maxUploadMB) << 20,
		OutputExtension:    getEnv("STA_EXTENSION", ".STA"),
		SaveDirName:        getEnv("SAVE_DIR", "save"),
		ErrorDirName:       getEnv("ERROR_DIR", "error"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := getEnv(key, "")
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		logrus.Warnf("invalid %s %q, using default %d", key, s, fallback)
		return fallback
	}
	return v
}
