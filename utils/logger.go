package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
	debug *log.Logger

	debugEnabled bool
}

// NewLogger creates a new Logger writing to stdout/stderr.
func NewLogger() *Logger {
	flags := 0
	return &Logger{
		info:         log.New(os.Stdout, "", flags),
		warn:         log.New(os.Stdout, "", flags),
		err:          log.New(os.Stderr, "", flags),
		debug:        log.New(os.Stdout, "", flags),
		debugEnabled: true,
	}
}

// NewLoggerTo sends every level to w. Mostly useful in tests.
func NewLoggerTo(w io.Writer) *Logger {
	l := log.New(w, "", 0)
	return &Logger{info: l, warn: l, err: l, debug: l, debugEnabled: true}
}

// SetDebug turns Debug output on or off.
func (l *Logger) SetDebug(enabled bool) {
	l.debugEnabled = enabled
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	l.info.Print(l.line("\033[32mINFO\033[0m ", format, args))
}

func (l *Logger) Warn(format string, args ...any) {
	l.warn.Print(l.line("\033[33mWARN\033[0m ", format, args))
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Print(l.line("\033[31mERROR\033[0m", format, args))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.debugEnabled {
		return
	}
	l.debug.Print(l.line("\033[36mDEBUG\033[0m", format, args))
}

func (l *Logger) line(level, format string, args []any) string {
	return fmt.Sprintf("[%s] %s %s\n", l.timestamp(), level, fmt.Sprintf(format, args...))
}
