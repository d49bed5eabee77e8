package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultDatasetPath = "data/MASATI"

type Config struct {
	DatasetPath string
	ImageExt    string
	MaskDir     string
	MaskFormat  string
	Workers     int

	TelegramToken  string
	TelegramChatID int64
}

// NotifyEnabled reports whether batch reports should go to Telegram.
func (c *Config) NotifyEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func Load() (*Config, error) {
	// Values from .env win over the environment; a missing file is fine.
	_ = godotenv.Overload()

	return FromEnv()
}

// FromEnv builds the config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatasetPath:   getenv("DATASET_PATH", defaultDatasetPath),
		ImageExt:      getenv("IMAGE_EXT", ".png"),
		MaskFormat:    getenv("MASK_FORMAT", "bin"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}
	cfg.MaskDir = getenv("MASK_DIR", filepath.Join(cfg.DatasetPath, "masks"))

	if v := os.Getenv("MASK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid MASK_WORKERS %q", v)
		}
		cfg.Workers = n
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
