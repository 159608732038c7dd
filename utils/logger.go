package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process logger used by the glue layers. Core services take
// their logger as a constructor argument instead of reaching for this.
var Logger = NewLogger()

// NewLogger builds a logrus logger configured from the environment. JSON
// output in production so the log aggregator can parse fields.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if os.Getenv("ENV") == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
