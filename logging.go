// Package-level structured logging: a package-global pluggable Logger, a
// zero-allocation no-op default, a small built-in leveled logger, and an
// adapter onto logiface so a host already standardized on it can capture
// scheduler diagnostics without a second logging stack.
//
// Design decision: the global logger is a package-level variable, not a
// per-Graph setting, because logging here is cross-cutting infrastructure
// shared across every Graph in the process.

package straph

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/logiface"
)

var globalLogger struct {
	sync.RWMutex
	logger Logger
}

// SetStructuredLogger installs the package-level logger used where no
// per-Graph logger was configured via WithLogger.
func SetStructuredLogger(logger Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

func getGlobalLogger() Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	if globalLogger.logger != nil {
		return globalLogger.logger
	}
	return NewNoOpLogger()
}

// LogLevel is the severity of a log message.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's name.
func (l LogLevel) String() string {
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
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// Field is one key-value pair attached to a log call.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logging interface scheduler diagnostics are
// reported through: node activation/termination, buffer backpressure,
// graph rewind/destroy.
type Logger interface {
	Log(ctx context.Context, level LogLevel, msg string, fields ...Field)
	IsEnabled(level LogLevel) bool
}

// NoOpLogger discards every log call; it is the default when no logger
// has been configured.
type NoOpLogger struct{}

func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

func (*NoOpLogger) Log(context.Context, LogLevel, string, ...Field) {}
func (*NoOpLogger) IsEnabled(LogLevel) bool                         { return false }

// WriterLogger is a minimal built-in Logger writing plain-text lines to
// an io.Writer, guarded by a mutex against interleaving from concurrent
// node goroutines.
type WriterLogger struct {
	level atomic.Int32
	mu    sync.Mutex
	out   io.Writer
}

// NewDefaultLogger returns a WriterLogger writing to os.Stderr.
func NewDefaultLogger(level LogLevel) *WriterLogger {
	return NewWriterLogger(level, os.Stderr)
}

// NewWriterLogger returns a WriterLogger writing to out.
func NewWriterLogger(level LogLevel, out io.Writer) *WriterLogger {
	l := &WriterLogger{out: out}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the minimum level that will be written.
func (l *WriterLogger) SetLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *WriterLogger) IsEnabled(level LogLevel) bool {
	return level >= LogLevel(l.level.Load())
}

func (l *WriterLogger) Log(_ context.Context, level LogLevel, msg string, fields ...Field) {
	if !l.IsEnabled(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[%s] %s %s", level, time.Now().Format("15:04:05.000"), msg)
	for _, f := range fields {
		fmt.Fprintf(l.out, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.out)
}

// logifaceLogger adapts a *logiface.Logger[logiface.Event] onto the
// Logger interface, so a host already using logiface can fold scheduler
// events into its own pipeline.
type logifaceLogger struct {
	l *logiface.Logger[logiface.Event]
}

// NewLogifaceLogger adapts l onto the Logger interface.
func NewLogifaceLogger(l *logiface.Logger[logiface.Event]) Logger {
	return &logifaceLogger{l: l}
}

func (a *logifaceLogger) toLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

func (a *logifaceLogger) IsEnabled(level LogLevel) bool {
	return a.l.Level() >= a.toLevel(level)
}

func (a *logifaceLogger) Log(_ context.Context, level LogLevel, msg string, fields ...Field) {
	b := a.l.Build(a.toLevel(level))
	if b == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			b = b.Str(f.Key, v)
		case error:
			b = b.Err(v)
		case int:
			b = b.Int(f.Key, v)
		default:
			b = b.Any(f.Key, v)
		}
	}
	b.Log(msg)
}

// Domain-specific convenience wrappers over a graph's logger (its
// WithLogger override, falling back to the package-level global — see
// Graph.log), named for the events the scheduler actually reports.

func logNodeActivated(n *Node) {
	logger := n.graph.log()
	if !logger.IsEnabled(LevelDebug) {
		return
	}
	logger.Log(context.Background(), LevelDebug, "node activated", Field{Key: "node", Value: fmt.Sprintf("%p", n)})
}

func logNodeTerminated(n *Node, err error) {
	logger := n.graph.log()
	level := LevelDebug
	if err != nil {
		level = LevelError
	}
	if !logger.IsEnabled(level) {
		return
	}
	fields := []Field{{Key: "node", Value: fmt.Sprintf("%p", n)}}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err})
	}
	logger.Log(context.Background(), level, "node terminated", fields...)
}

func logBufferBackpressure(n *Node, slot int) {
	logger := n.graph.log()
	if !logger.IsEnabled(LevelDebug) {
		return
	}
	logger.Log(context.Background(), LevelDebug, "circular buffer writer blocked", Field{Key: "node", Value: fmt.Sprintf("%p", n)}, Field{Key: "slot", Value: slot})
}

func logGraphRewind(g *Graph) {
	logger := g.log()
	if !logger.IsEnabled(LevelDebug) {
		return
	}
	logger.Log(context.Background(), LevelDebug, "graph rewound")
}

func logGraphDestroy(g *Graph) {
	logger := g.log()
	if !logger.IsEnabled(LevelDebug) {
		return
	}
	logger.Log(context.Background(), LevelDebug, "graph destroyed")
}
