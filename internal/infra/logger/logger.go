// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"homework_status_bot/internal/infra/config"
)

// New builds the application logger. It is created once in main and passed to
// every component. The returned closer releases the log file.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer) {
	log := logrus.New()

	var closer io.Closer = nopCloser{}
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // megabytes
			MaxBackups: cfg.MaxBackups,
		}
		output = io.MultiWriter(os.Stdout, file)
		closer = file
	}
	log.SetOutput(output)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.Level, err)
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	// Set Log Formatter
	env := strings.ToLower(cfg.Environment)
	if env == "production" || env == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   cfg.File != "", // keep escape codes out of the log file
		})
	}

	log.Debugf("Logger initialized. Level: %s, environment: %s, file: %q", log.GetLevel(), cfg.Environment, cfg.File)
	return log, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
