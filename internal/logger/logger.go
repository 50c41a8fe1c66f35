package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPath is the log file, relative to the working directory (project root when run via go run ./cmd/gravity).
const DefaultPath = "logs/gravity.txt"

// Logger stores lines of text (terminal input, simulation events) in memory and appends them to a file on disk.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	slog  *slog.Logger
}

// New returns a Logger appending to path and ensures its directory exists.
// An empty path keeps lines in memory only, as does a directory that cannot
// be created; that failure is recorded as the first line.
func New(path string) *Logger {
	l := &Logger{path: path, lines: make([]string, 0)}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			l.disableFile(err)
		}
	}
	l.slog = slog.New(slog.NewTextHandler(l, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Log already stamps every line.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	return l
}

// Log appends a line to the logger and appends it to the log file on disk. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.disableFile(err)
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// disableFile stops writing to disk and notes why, once.
func (l *Logger) disableFile(err error) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return
	}
	l.path = ""
	l.lines = append(l.lines, "["+ts+"] log file disabled: "+err.Error())
}

// Logf formats and logs one line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Write logs each non-empty line of p, so the Logger can back any io.Writer
// (the slog handler, the standard log package).
func (l *Logger) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			l.Log(line)
		}
	}
	return len(p), nil
}

// Slog returns a structured logger whose records land in the same lines and file.
func (l *Logger) Slog() *slog.Logger { return l.slog }

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of the last n stored lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(len(l.lines)-n, 0)
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

var _ io.Writer = (*Logger)(nil)
