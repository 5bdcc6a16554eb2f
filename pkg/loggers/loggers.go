package loggers

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	Account   = "account"
	Multicall = "multicall"
	TxHash    = "txhash"
	Artifact  = "artifact"
	Crypto    = "crypto"
	Repo      = "repo"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		Account:   newWithModule(Account),
		Multicall: newWithModule(Multicall),
		TxHash:    newWithModule(TxHash),
		Artifact:  newWithModule(Artifact),
		Crypto:    newWithModule(Crypto),
		Repo:      newWithModule(Repo),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

func newWithModule(name string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000",
	})
	return logger.WithField("module", name)
}

// Initialize sets the level of every module logger from the configured
// level string.
func Initialize(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	for _, entry := range w.loggers {
		entry.Logger.SetLevel(parsed)
	}
	return nil
}

// Logger returns the logger bound to a module name, falling back to a
// fresh entry for unknown modules.
func Logger(name string) logrus.FieldLogger {
	if entry, ok := w.loggers[name]; ok {
		return entry
	}
	return newWithModule(name)
}
