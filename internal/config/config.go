package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the CLI.
type Config struct {
	DBPath         string
	LogLevel       string
	ReminderWindow time.Duration
	CheckInterval  time.Duration
	DesktopNotify  bool
	TelegramToken  string
	TelegramChatID int64
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	cfg := Config{
		DBPath:         strings.TrimSpace(os.Getenv("TODOCLI_DB")),
		LogLevel:       strings.TrimSpace(os.Getenv("TODOCLI_LOG_LEVEL")),
		ReminderWindow: parseMinutes(os.Getenv("TODOCLI_REMINDER_WINDOW")),
		CheckInterval:  parseMinutes(os.Getenv("TODOCLI_CHECK_INTERVAL")),
		DesktopNotify:  parseBool(os.Getenv("TODOCLI_DESKTOP_NOTIFY"), true),
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID: parseChatID(os.Getenv("TELEGRAM_CHAT_ID")),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.ReminderWindow == 0 {
		cfg.ReminderWindow = 30 * time.Minute
	}

	return cfg
}

func defaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "todocli.db"
	}
	return filepath.Join(configDir, "todocli", "todocli.db")
}

func parseMinutes(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseChatID(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
