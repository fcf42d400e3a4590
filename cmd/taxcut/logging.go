package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

var logLevels = map[string]logrus.Level{
	"trace": logrus.TraceLevel,
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"off":   logrus.PanicLevel,
}

func logLevelNames() []string {
	names := make([]string, 0, len(logLevels))
	for name := range logLevels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newLogger builds the process logger. --debug forces the debug level.
func newLogger(out io.Writer, level string, debug bool) (*logrus.Logger, error) {
	lvl, ok := logLevels[level]
	if !ok {
		return nil, fmt.Errorf("log level must be one of %v, got %q", logLevelNames(), level)
	}
	if debug && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.0000",
	})
	return l, nil
}

// engineLogger adapts a logrus entry to calculation.Logger
type engineLogger struct {
	entry *logrus.Entry
}

func (l engineLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l engineLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l engineLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l engineLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
