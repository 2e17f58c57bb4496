package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a level name ("debug", "INFO", ...) to a LogLevel.
// Unknown names yield INFO.
func ParseLogLevel(name string) LogLevel {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i)
		}
	}
	return INFO
}

// Logger is a concurrency-safe, levelled logger shared by every session,
// the dashboard and the outer surfaces.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	inner *log.Logger
	out   io.Writer // stdout, before any log file is attached
	file  *os.File
}

var (
	globalLogger *Logger
	logOnce      sync.Once
)

// InitLogger creates the singleton logger. Call once at startup.
func InitLogger(minLevel LogLevel, logFilePath string) *Logger {
	logOnce.Do(func() {
		var writers []io.Writer
		writers = append(writers, os.Stdout)

		var f *os.File
		if logFilePath != "" {
			var err error
			f, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, f)
			} else {
				log.Printf("[WARN] could not open log file %s: %v\n", logFilePath, err)
			}
		}

		mw := io.MultiWriter(writers...)
		globalLogger = &Logger{
			level: minLevel,
			inner: log.New(mw, "", 0),
			out:   os.Stdout,
			file:  f,
		}
	})
	return globalLogger
}

// L returns the global logger, initialising a stdout-only INFO logger if
// InitLogger has not been called.
func L() *Logger {
	return InitLogger(INFO, "")
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(lvl LogLevel) {
	l.mu.Lock()
	l.level = lvl
	l.mu.Unlock()
}

// Configure applies the log section of app.yaml. An empty level keeps the
// current one; a file is attached only if none is open yet.
func (l *Logger) Configure(cfg LogConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cfg.Level != "" {
		l.level = ParseLogLevel(cfg.Level)
	}
	if cfg.File == "" || l.file != nil {
		return nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", cfg.File, err)
	}
	l.file = f
	l.inner.SetOutput(io.MultiWriter(l.out, f))
	return nil
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) log(lvl LogLevel, format string, args ...any) {
	l.mu.Lock()
	threshold := l.level
	l.mu.Unlock()
	if lvl < threshold {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	l.inner.Printf("[%s] %s  %s", lvl, ts, msg)
	l.mu.Unlock()
}

func (l *Logger) Debug(f string, a ...any) { l.log(DEBUG, f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.log(INFO, f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.log(WARN, f, a...) }
func (l *Logger) Error(f string, a ...any) { l.log(ERROR, f, a...) }
