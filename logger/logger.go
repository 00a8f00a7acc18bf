// Package logger writes leveled diagnostics to the console (stderr) and
// optionally to a log file. Console lines are coloured, file lines are not.
// The conversion report itself is not logged; it goes to stdout.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}
var levelColors = [...]string{colorGray, colorReset, colorYellow, colorRed}

func (l LogLevel) String() string {
	if l < DEBUG || l > ERROR {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a level name such as "warn" or "DEBUG".
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return WARN, fmt.Errorf("unknown log level %q", name)
}

// sink is one output destination with a logger per level.
type sink struct {
	loggers [4]*log.Logger
}

func newSink(w io.Writer, color bool) *sink {
	flags := log.Ldate | log.Ltime | log.Lshortfile
	s := &sink{}
	for lvl := DEBUG; lvl <= ERROR; lvl++ {
		prefix := fmt.Sprintf("[%-5s] ", levelNames[lvl])
		if color {
			prefix = levelColors[lvl] + prefix + colorReset
		}
		s.loggers[lvl] = log.New(w, prefix, flags)
	}
	return s
}

type Logger struct {
	console  *sink
	file     *sink
	fd       *os.File
	minLevel LogLevel
}

var (
	defaultLogger *Logger
	once          sync.Once
	mu            sync.Mutex
)

// ensureInitialized creates a default console logger if none exists
func ensureInitialized() {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if defaultLogger == nil {
			defaultLogger = &Logger{
				console:  newSink(os.Stderr, true),
				minLevel: WARN,
			}
		}
	})
}

// Init initializes the logger with optional file and console output.
// If filename is empty, logs only to console.
// If console is false, logs only to file.
func Init(filename string, console bool) error {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()

	l := &Logger{minLevel: defaultLogger.minLevel}
	if filename != "" {
		fd, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.fd = fd
		l.file = newSink(fd, false)
	}
	if console {
		l.console = newSink(os.Stderr, true)
	}
	if l.console == nil && l.file == nil {
		return fmt.Errorf("no output destination specified")
	}

	if defaultLogger.fd != nil {
		defaultLogger.fd.Close()
	}
	defaultLogger = l
	return nil
}

// SetOutput sends console output to w without colours, replacing any
// previous destinations. Used by tests to capture log lines.
func SetOutput(w io.Writer) {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger.fd != nil {
		defaultLogger.fd.Close()
	}
	defaultLogger = &Logger{
		console:  newSink(w, false),
		minLevel: defaultLogger.minLevel,
	}
}

// SetLevel sets the minimum log level (DEBUG, INFO, WARN, ERROR).
// Messages below this level will not be logged.
func SetLevel(level LogLevel) {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()
	defaultLogger.minLevel = level
}

// Close closes the log file if one is open
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if defaultLogger != nil && defaultLogger.fd != nil {
		defaultLogger.fd.Close()
		defaultLogger.fd = nil
		defaultLogger.file = nil
	}
}

func output(level LogLevel, msg string) {
	ensureInitialized()
	mu.Lock()
	defer mu.Unlock()

	l := defaultLogger
	if level < l.minLevel {
		return
	}
	// calldepth 3: output <- Debugf <- caller
	if l.console != nil {
		l.console.loggers[level].Output(3, msg)
	}
	if l.file != nil {
		l.file.loggers[level].Output(3, msg)
	}
}

// Debug logs a debug message
func Debug(v ...interface{}) { output(DEBUG, fmt.Sprint(v...)) }

// Debugf logs a formatted debug message
func Debugf(format string, v ...interface{}) { output(DEBUG, fmt.Sprintf(format, v...)) }

// Info logs an info message
func Info(v ...interface{}) { output(INFO, fmt.Sprint(v...)) }

// Infof logs a formatted info message
func Infof(format string, v ...interface{}) { output(INFO, fmt.Sprintf(format, v...)) }

// Warn logs a warning message
func Warn(v ...interface{}) { output(WARN, fmt.Sprint(v...)) }

// Warnf logs a formatted warning message
func Warnf(format string, v ...interface{}) { output(WARN, fmt.Sprintf(format, v...)) }

// Error logs an error message
func Error(v ...interface{}) { output(ERROR, fmt.Sprint(v...)) }

// Errorf logs a formatted error message
func Errorf(format string, v ...interface{}) { output(ERROR, fmt.Sprintf(format, v...)) }

// Fatal logs an error message and exits the program
func Fatal(v ...interface{}) {
	output(ERROR, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits the program
func Fatalf(format string, v ...interface{}) {
	output(ERROR, fmt.Sprintf(format, v...))
	os.Exit(1)
}
