package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LevelEnv overrides the level picked from GIN_MODE.
const LevelEnv = "LOG_LEVEL"

// New returns a JSON logger at info level in release mode and a text logger at debug level otherwise.
// An unparsable LOG_LEVEL is ignored.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if os.Getenv("GIN_MODE") == "release" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}

	if raw, ok := os.LookupEnv(LevelEnv); ok {
		if level, err := logrus.ParseLevel(raw); err == nil {
			l.SetLevel(level)
		}
	}
	return l
}
