package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/redstore"
)

// Logger adapts a logrus.Entry to the redstore logging facade.
type Logger struct{ E *logrus.Entry }

var _ redstore.Logger = Logger{}

func (l Logger) Debug(msg string, f redstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}

func (l Logger) Info(msg string, f redstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}

func (l Logger) Warn(msg string, f redstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}

func (l Logger) Error(msg string, f redstore.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
