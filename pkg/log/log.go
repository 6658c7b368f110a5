package log

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gookit/color"
)

type Logger interface {
	Error(format string, v ...any)
	Warning(format string, v ...any)
	Info(format string, v ...any)
	Debug(format string, v ...any)
	Close() error
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Levels accepted by ParseLevel
var Levels = []string{"debug", "info", "warn", "error"}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("log: unknown level %q", s)
}

// New writes to the file at path, or to the console if path is empty.
// Console output tags levels with colors.
func New(path string, level Level) (Logger, error) {
	if path != "" {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			return nil, fmt.Errorf("log: open %s: %w", path, err)
		}
		return &StdLog{
			err:   log.New(file, "ERROR ", log.Ldate|log.Ltime),
			wrn:   log.New(file, "WARN ", log.Ldate|log.Ltime),
			inf:   log.New(file, "INFO ", log.Ldate|log.Ltime),
			dbg:   log.New(file, "DEBUG ", log.Ldate|log.Ltime),
			level: level,
			file:  file,
		}, nil
	}
	return &StdLog{
		err:   log.New(os.Stderr, color.Red.Sprint("error")+" ", 0),
		wrn:   log.New(os.Stderr, color.Yellow.Sprint("warn")+" ", 0),
		inf:   log.New(os.Stderr, "", 0),
		dbg:   log.New(os.Stderr, color.Cyan.Sprint("debug")+" ", 0),
		level: level,
	}, nil
}

type StdLog struct {
	err, wrn, inf, dbg *log.Logger
	level              Level
	file               *os.File
}

func (l *StdLog) Error(format string, v ...any) {
	l.output(LevelError, l.err, format, v...)
}

func (l *StdLog) Warning(format string, v ...any) {
	l.output(LevelWarn, l.wrn, format, v...)
}

func (l *StdLog) Info(format string, v ...any) {
	l.output(LevelInfo, l.inf, format, v...)
}

func (l *StdLog) Debug(format string, v ...any) {
	l.output(LevelDebug, l.dbg, format, v...)
}

func (l *StdLog) output(level Level, to *log.Logger, format string, v ...any) {
	if level < l.level {
		return
	}
	_ = to.Output(3, fmt.Sprintf(format, v...))
}

func (l *StdLog) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type EmptyLog struct{}

func NewEmptyLog() Logger { return EmptyLog{} }

func (l EmptyLog) Error(string, ...any)   {}
func (l EmptyLog) Warning(string, ...any) {}
func (l EmptyLog) Info(string, ...any)    {}
func (l EmptyLog) Debug(string, ...any)   {}
func (l EmptyLog) Close() error           { return nil }
