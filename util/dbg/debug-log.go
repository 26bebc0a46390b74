//go:build debug
// +build debug

package dbg

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

type logrusLoggerImpl struct {
	entry *logrus.Entry
}

// init installs a DebugLevel logrus logger for the debug build: every
// dbg.Printf call is visible.
func init() {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(os.Stderr)
	debugLog = &logrusLoggerImpl{entry: logrus.NewEntry(l)}
}

func subsystemLogger(name string) DebugLogger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.SetOutput(os.Stderr)
	return &logrusLoggerImpl{entry: l.WithField("subsystem", name)}
}

func (d *logrusLoggerImpl) Printf(format string, a ...interface{}) {
	d.entry.Debug(fmt.Sprintf(format, a...))
}

func (d *logrusLoggerImpl) Println(a ...interface{}) {
	d.entry.Debug(fmt.Sprintln(a...))
}

func (d *logrusLoggerImpl) Warnf(format string, a ...interface{}) {
	d.entry.Warn(fmt.Sprintf(format, a...))
}
