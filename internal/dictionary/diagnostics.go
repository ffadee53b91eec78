package dictionary

import (
	"context"
	"log/slog"
	"sync"
)

// Severity of a Diagnostic.
type Severity int

const (
	SeverityNotice Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "notice"
}

// Diagnostic describes a skipped node or an advisory condition found while building.
type Diagnostic struct {
	Severity Severity
	NodeID   int64
	Class    string
	Err      *Error
}

// Diagnostics receives diagnostics from a Builder.
type Diagnostics interface {
	Record(d Diagnostic)
}

// LogDiagnostics writes diagnostics to a slog logger.
type LogDiagnostics struct {
	logger *slog.Logger
}

func NewLogDiagnostics(logger *slog.Logger) *LogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDiagnostics{logger: logger}
}

func (l *LogDiagnostics) Record(d Diagnostic) {
	level := slog.LevelInfo
	if d.Severity == SeverityError {
		level = slog.LevelError
	}
	attrs := []slog.Attr{
		slog.String("severity", d.Severity.String()),
		slog.String("kind", d.Err.Kind.String()),
	}
	if d.NodeID != 0 {
		attrs = append(attrs, slog.Int64("nodeID", d.NodeID))
	}
	if d.Class != "" {
		attrs = append(attrs, slog.String("class", d.Class))
	}
	l.logger.LogAttrs(context.Background(), level, d.Err.Message, attrs...)
}

// DiagnosticRecorder keeps diagnostics in memory.
type DiagnosticRecorder struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (r *DiagnosticRecorder) Record(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = append(r.diagnostics, d)
}

// Diagnostics returns a copy of the recorded diagnostics.
func (r *DiagnosticRecorder) Diagnostics() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Diagnostic(nil), r.diagnostics...)
}

// MultiDiagnostics sends every diagnostic to each sink.
type MultiDiagnostics []Diagnostics

func (m MultiDiagnostics) Record(d Diagnostic) {
	for _, sink := range m {
		sink.Record(d)
	}
}
