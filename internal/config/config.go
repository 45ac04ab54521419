package config

import (
	"os"
	"time"
)

const defaultPollInterval = 20 * time.Second

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	DatabasePath       string
	Port               string
	Timezone           string
	PollInterval       time.Duration
}

func Load() *Config {
	return &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./reminders.db"),
		Port:               getEnv("PORT", "3000"),
		Timezone:           getEnv("TIMEZONE", "Asia/Taipei"),
		PollInterval:       getDurationEnv("POLL_INTERVAL", defaultPollInterval),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
