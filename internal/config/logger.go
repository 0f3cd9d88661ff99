package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger configures the shared logrus logger: JSON on stdout at the
// given level, falling back to info for unknown levels.
func InitLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}
