// Package log provides a structured logging facade over logrus with optional filesystem persistence.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/au2001/onepace-stremio/filesystem"
	"github.com/au2001/onepace-stremio/key"
	"github.com/au2001/onepace-stremio/where"
	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Setup routes log output to stderr and, when logs.write is set, to a daily file as well.
// Formatting and severity follow the logs.json and logs.level configuration.
func Setup() error {
	var out io.Writer = os.Stderr

	if viper.GetBool(key.LogsWrite) {
		dir := where.Logs()
		if dir == "" {
			return errors.New("log directory path is empty")
		}

		filename := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))
		path := filepath.Join(dir, filename)

		if exists := lo.Must(filesystem.API().Exists(path)); !exists {
			lo.Must(filesystem.API().Create(path))
		}

		f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}
	logrus.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl := viper.GetString(key.LogsLevel)
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Fields is an alias of logrus.Fields so callers don't import logrus directly.
type Fields = logrus.Fields

// WithFields returns an entry carrying structured fields.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Severity-Specific Log Emissions - these functions proxy messages to the configured backend.

func Panic(args ...interface{}) {
	logrus.Panic(args...)
}
func Panicf(format string, args ...interface{}) {
	logrus.Panicf(format, args...)
}
func Fatal(args ...interface{}) {
	logrus.Fatal(args...)
}
func Fatalf(format string, args ...interface{}) {
	logrus.Fatalf(format, args...)
}
func Error(args ...interface{}) {
	logrus.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logrus.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logrus.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}
func Trace(args ...interface{}) {
	logrus.Trace(args...)
}
func Tracef(format string, args ...interface{}) {
	logrus.Tracef(format, args...)
}
