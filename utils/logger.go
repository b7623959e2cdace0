package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Logger
}

func InitLogger() *Logger {
	logger := logrus.New()

	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.DebugLevel)

	return &Logger{logger}
}

// SetLevelFromString applies a configured level name. An unknown name
// keeps the current level so a config typo never silences the log.
func (l *Logger) SetLevelFromString(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("unknown log level %q, keeping %s", level, l.GetLevel())
		return
	}
	l.SetLevel(parsed)
}
