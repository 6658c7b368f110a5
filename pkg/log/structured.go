package log

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Formats accepted by NewStructured. "text" is handled by New.
var Formats = []string{"text", "console", "json", "pretty"}

// NewStructured returns a go-logger backed Logger named name.
func NewStructured(name, format string, level Level) (Logger, error) {
	options := []glog.Option{glog.WithLevel(glogLevel(level))}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("log: unsupported structured format %q", format)
	}

	root := glog.NewLogger(options...)
	var inner glog.Logger = root
	if name = strings.TrimSpace(name); name != "" {
		inner = root.GetLogger(name)
	}
	return &structured{inner: inner}, nil
}

type structured struct {
	inner glog.Logger
}

func (l *structured) Error(format string, v ...any)   { l.inner.Error(fmt.Sprintf(format, v...)) }
func (l *structured) Warning(format string, v ...any) { l.inner.Warn(fmt.Sprintf(format, v...)) }
func (l *structured) Info(format string, v ...any)    { l.inner.Info(fmt.Sprintf(format, v...)) }
func (l *structured) Debug(format string, v ...any)   { l.inner.Debug(fmt.Sprintf(format, v...)) }
func (l *structured) Close() error                    { return nil }

func glogLevel(level Level) string {
	switch level {
	case LevelDebug:
		return glog.Debug
	case LevelWarn:
		return glog.Warn
	case LevelError:
		return glog.Error
	}
	return glog.Info
}
