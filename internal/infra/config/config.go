package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"homework_status_bot/internal/domain/homework"
)

const (
	DefaultEndpoint      = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetrySchedule = "@every 10m"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultLogFile       = "homework_bot.log"
	DefaultLogMaxSizeMB  = 50
	DefaultLogMaxBackups = 5
)

// ErrConfiguration is the only error that stops the bot before it starts polling.
var ErrConfiguration = errors.New("configuration error")

// LogConfig holds logging settings. It never fails to load so that the logger
// exists before the rest of the configuration is validated.
type LogConfig struct {
	Level       string
	Environment string
	File        string // empty disables file output
	MaxSizeMB   int
	MaxBackups  int
}

// AppConfig holds all configuration for the application
type AppConfig struct {
	Log LogConfig

	PracticumToken   string
	PracticumURL     string
	TelegramToken    string
	TelegramChatID   int64
	RetrySchedule    cron.Schedule
	RetryScheduleRaw string
	HTTPTimeout      time.Duration
	Verdicts         homework.Verdicts
}

// loadDotEnv loads .env once; errors are ignored if the file doesn't exist.
// godotenv.Load will not override existing env variables.
func loadDotEnv() {
	_ = godotenv.Load()
}

// LoadLogging reads logging settings from the environment, falling back to defaults.
func LoadLogging() LogConfig {
	loadDotEnv()

	cfg := LogConfig{
		Level:       strings.ToLower(os.Getenv("LOG_LEVEL")),
		Environment: strings.ToLower(os.Getenv("ENVIRONMENT")),
		MaxSizeMB:   intEnv("LOG_MAX_SIZE_MB", DefaultLogMaxSizeMB),
		MaxBackups:  intEnv("LOG_MAX_BACKUPS", DefaultLogMaxBackups),
	}
	if cfg.Level == "" {
		cfg.Level = "info" // Default log level
	}
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	file, ok := os.LookupEnv("LOG_FILE")
	if !ok {
		file = DefaultLogFile
	}
	cfg.File = strings.TrimSpace(file)
	return cfg
}

// Load reads configuration from environment variables and .env file (if present).
// All missing credentials are reported in a single error.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{Log: LoadLogging()}
	var err error

	var missing []string
	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is not set", ErrConfiguration, strings.Join(missing, ", "))
	}

	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid TELEGRAM_CHAT_ID: %v", ErrConfiguration, err)
	}

	cfg.PracticumURL = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumURL == "" {
		cfg.PracticumURL = DefaultEndpoint
	}

	cfg.RetryScheduleRaw = os.Getenv("RETRY_SCHEDULE")
	if cfg.RetryScheduleRaw == "" {
		cfg.RetryScheduleRaw = DefaultRetrySchedule // every 600 seconds
	}
	cfg.RetrySchedule, err = cron.ParseStandard(cfg.RetryScheduleRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid RETRY_SCHEDULE %q: %v", ErrConfiguration, cfg.RetryScheduleRaw, err)
	}
	if cfg.RetrySchedule.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("%w: RETRY_SCHEDULE %q never fires", ErrConfiguration, cfg.RetryScheduleRaw)
	}

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw)
		if err != nil || cfg.HTTPTimeout <= 0 {
			return nil, fmt.Errorf("%w: invalid HTTP_TIMEOUT %q", ErrConfiguration, raw)
		}
	}

	cfg.Verdicts = homework.DefaultVerdicts()
	if path := os.Getenv("VERDICTS_FILE"); path != "" {
		cfg.Verdicts, err = LoadVerdicts(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	return cfg, nil
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
