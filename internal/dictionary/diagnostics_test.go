package dictionary

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogDiagnostics_Record(t *testing.T) {
	tests := []struct {
		name       string
		diagnostic Diagnostic
		want       []string
	}{
		{
			name: "error of a node",
			diagnostic: Diagnostic{
				Severity: SeverityError,
				NodeID:   12,
				Class:    "term",
				Err:      NewError(KindConfiguration, "missing description"),
			},
			want: []string{"level=ERROR", `msg="missing description"`, "nodeID=12", "kind=configuration", "class=term", "severity=error"},
		},
		{
			name: "notice without a node",
			diagnostic: Diagnostic{
				Severity: SeverityNotice,
				Err:      NewError(KindConfiguration, "no nodes"),
			},
			want: []string{"level=INFO", `msg="no nodes"`, "severity=notice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			NewLogDiagnostics(slog.New(slog.NewTextHandler(&logs, nil))).Record(tt.diagnostic)
			for _, want := range tt.want {
				assert.Contains(t, logs.String(), want)
			}
		})
	}
}

func TestMultiDiagnostics_Record(t *testing.T) {
	first := &DiagnosticRecorder{}
	second := &DiagnosticRecorder{}
	var logs bytes.Buffer
	diagnostics := MultiDiagnostics{first, second, NewLogDiagnostics(slog.New(slog.NewTextHandler(&logs, nil)))}

	d := Diagnostic{Severity: SeverityError, NodeID: 12, Class: "term", Err: NewError(KindConfiguration, "missing description")}
	diagnostics.Record(d)

	assert.Equal(t, []Diagnostic{d}, first.Diagnostics())
	assert.Equal(t, []Diagnostic{d}, second.Diagnostics())
	assert.Contains(t, logs.String(), "missing description")
}
