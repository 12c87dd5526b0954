package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type serviceHook struct {
	name string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.name
	return nil
}

func CreateLogger(serviceName string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.AddHook(serviceHook{name: serviceName})
	return l
}

// SetLevel applies a textual level, keeping the current one when it cannot be parsed.
func SetLevel(l *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.WithError(err).Warnf("Unknown log level [%s], keeping [%s].", level, l.GetLevel())
		return
	}
	l.SetLevel(lvl)
}
