package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger.
var Log = logrus.New()

func Init(level string, environment string) {
	InitWithOutput(os.Stdout, level, environment)
}

func InitWithOutput(output io.Writer, level string, environment string) {
	Log.SetOutput(output)

	parsedLevel, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		Log.SetLevel(logrus.InfoLevel)
		Log.Warnf("invalid log level %q, defaulting to info", level)
	} else {
		Log.SetLevel(parsedLevel)
	}

	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "production", "staging":
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("logger initialized (level=%s, environment=%s)", Log.GetLevel(), environment)
}
