// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Init builds the logger from a level name and a format ("json" or "text").
// Unknown levels fall back to info with a warning.
func Init(level string, format string) *logrus.Logger {
	return InitWithOutput(level, format, os.Stderr)
}

// InitWithOutput is Init writing to out.
func InitWithOutput(level string, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("unknown log level, using info")
	}

	logger = log
	return log
}

// Get returns the logger built by Init, or an info-level text logger.
func Get() *logrus.Logger {
	if logger == nil {
		return Init("info", "text")
	}
	return logger
}

func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}

func WithRequestID(id string) *logrus.Entry {
	return Get().WithField("request_id", id)
}

func WithLeague(leagueID int) *logrus.Entry {
	return Get().WithField("league_id", leagueID)
}
