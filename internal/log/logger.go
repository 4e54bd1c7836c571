// Package log provides logging to both console and a log file.
// While the TUI is running only the file sink should be used, so
// background activity never corrupts the rendered screen.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"
)

// Logger writes output to the console and a log file.
type Logger struct {
	file     *os.File
	writer   io.Writer
	fileOnly bool
}

// New creates a logger writing to both stdout and <dir>/dareloop.log.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "dareloop.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		file:   file,
		writer: io.MultiWriter(os.Stdout, file),
	}, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(l.sink(), format, args...)
}

// Println writes a message with a newline.
func (l *Logger) Println(args ...interface{}) {
	_, _ = fmt.Fprint(l.sink(), fmt.Sprintln(args...))
}

// Errorf writes a timestamped error message to stderr and the log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	formatted := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), msg)
	if !l.fileOnly {
		_, _ = fmt.Fprint(os.Stderr, formatted)
	}
	_, _ = fmt.Fprint(l.file, formatted)
}

// SetFileOnly routes all subsequent output to the log file alone.
// Called right before handing the terminal to the TUI.
func (l *Logger) SetFileOnly(fileOnly bool) {
	l.fileOnly = fileOnly
}

func (l *Logger) sink() io.Writer {
	if l.fileOnly {
		return l.file
	}
	return l.writer
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Global logger instance.
var globalLogger *Logger

// Init initializes the global logger and redirects Go's standard log
// package into the log file, so stray log.Printf calls stay off-screen.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// SetFileOnly switches the global logger to file-only output.
func SetFileOnly(fileOnly bool) {
	if globalLogger != nil {
		globalLogger.SetFileOnly(fileOnly)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
