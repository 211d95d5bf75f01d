// Package debuglog writes structured debug events (one JSON object per line)
// to a file when debug mode is enabled. When disabled every call is a no-op.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "gantt-debug.log"

// Logger logs chart lifecycle and input events.
type Logger struct {
	mu      sync.Mutex
	out     *logrus.Logger
	closer  io.Closer
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog = &Logger{}

// Init enables the global debug logger, writing to path (DefaultPath when
// empty). When enabled is false the logger is reset to a no-op.
func Init(enabled bool, path string) error {
	if !enabled {
		debugLog = &Logger{}
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = newLogger(f, f)
	debugLog.Log("DEBUG_START", logrus.Fields{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// InitWriter enables the global debug logger on an arbitrary writer.
func InitWriter(w io.Writer) {
	debugLog = newLogger(w, nil)
}

func newLogger(w io.Writer, closer io.Closer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat:   "15:04:05.000",
		DisableHTMLEscape: true,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "ts",
			logrus.FieldKeyMsg:  "event",
		},
	})
	return &Logger{out: l, closer: closer, enabled: true}
}

// Close writes the end marker and closes the log file.
func Close() {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.Log("DEBUG_END", logrus.Fields{
		"time": time.Now().Format(time.RFC3339),
	})
	if debugLog.closer != nil {
		_ = debugLog.closer.Close()
	}
	debugLog = &Logger{}
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return debugLog != nil && debugLog.enabled
}

// Event logs an event on the global logger.
func Event(event string, fields logrus.Fields) {
	debugLog.Log(event, fields)
}

// Log writes a structured log entry.
func (d *Logger) Log(event string, fields logrus.Fields) {
	if d == nil || !d.enabled || d.out == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	d.out.WithFields(fields).WithField("seq", d.seq).Debug(event)
}
