package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup настраивает стандартный логгер logrus: формат и уровень.
// format: "json" или "text".
func Setup(level, format string) {
	if strings.ToLower(format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(ParseLevel(level))
}

// ParseLevel переводит строку уровня в logrus.Level, по умолчанию info.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// WithRequestID возвращает запись лога с полем request_id.
func WithRequestID(requestID string) *logrus.Entry {
	return logrus.WithField("request_id", requestID)
}
