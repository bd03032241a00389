// Package logger provides structured logging for StudySpark.
// It supports log levels, structured fields, and both text and JSON output.
// No external dependencies - uses only standard library.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general operational information.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name; unknown names default to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format determines the output encoding.
type Format int

const (
	// FormatText is human-readable key=value output.
	FormatText Format = iota
	// FormatJSON is one JSON object per line.
	FormatJSON
)

// Fields holds structured context attached to log entries.
type Fields map[string]interface{}

// Logger is a leveled, structured logger.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	format Format
	fields Fields
}

// New creates a logger writing to out at the given level.
func New(out io.Writer, level Level, format Format) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, level: level, format: format, fields: Fields{}}
}

// Default returns a text logger on stderr at info level.
func Default() *Logger {
	return New(os.Stderr, LevelInfo, FormatText)
}

// With returns a child logger carrying additional fields.
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, level: l.level, format: l.format, fields: merged}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields Fields) { l.log(LevelDebug, msg, fields) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields Fields) { l.log(LevelInfo, msg, fields) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields Fields) { l.log(LevelWarn, msg, fields) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, fields Fields) {
	if level < l.level {
		return
	}

	entry := make(Fields, len(l.fields)+len(fields)+3)
	for k, v := range l.fields {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	ts := time.Now().UTC().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == FormatJSON {
		entry["time"] = ts
		entry["level"] = level.String()
		entry["msg"] = msg
		// Errors are not JSON-marshallable by default
		for k, v := range entry {
			if err, ok := v.(error); ok {
				entry[k] = err.Error()
			}
		}
		b, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"time":%q,"level":"ERROR","msg":"logger: marshal failed: %v"}`+"\n", ts, err)
			return
		}
		fmt.Fprintln(l.out, string(b))
		return
	}

	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", ts, level.String(), msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry[k])
	}
	fmt.Fprintln(l.out, b.String())
}
