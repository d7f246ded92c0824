package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSearchReporterLogsImprovements(t *testing.T) {
	var buf bytes.Buffer
	r := newSearchReporter(newLogger(&buf, log.InfoLevel), nil, 5)

	r.onGeneration(0, 3)
	if buf.Len() != 0 {
		t.Errorf("initial rating should only log at debug level, got %q", buf.String())
	}
	r.onGeneration(1, 3)
	if buf.Len() != 0 {
		t.Errorf("unchanged rating should not log before the heartbeat, got %q", buf.String())
	}
	r.onGeneration(2, 1.5)
	if !strings.Contains(buf.String(), "improved") || !strings.Contains(buf.String(), "gain=1.5") {
		t.Errorf("improvement not logged: %q", buf.String())
	}
}

func TestSearchReporterHeartbeat(t *testing.T) {
	var buf bytes.Buffer
	r := newSearchReporter(newLogger(&buf, log.InfoLevel), nil, 50)
	r.heartbeat = 0

	r.onGeneration(0, 2)
	r.onGeneration(1, 2)
	if !strings.Contains(buf.String(), "generation=2/50") {
		t.Errorf("heartbeat not logged: %q", buf.String())
	}
}

func TestSearchReporterUpdatesSpinner(t *testing.T) {
	var out syncBuffer
	s := newSpinnerTo(t.Context(), &out, "Searching...")
	r := newSearchReporter(newLogger(&bytes.Buffer{}, log.InfoLevel), s, 10)

	r.onGeneration(3, 0.25)
	if s.message != "Generation 4/10 · best 0.2500" {
		t.Errorf("spinner message = %q", s.message)
	}
}

func TestSearchReporterFinish(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		warn    bool
	}{
		{"short", []float64{3, 2, 1}, false},
		{"converged early", []float64{3, 1, 1, 1, 1, 1, 1, 1, 1, 1}, false},
		{"late improvement", []float64{3, 3, 3, 3, 3, 3, 3, 3, 3, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newSearchReporter(newLogger(&buf, log.InfoLevel), nil, len(tt.history)).finish(tt.history)
			if got := strings.Contains(buf.String(), "still improving"); got != tt.warn {
				t.Errorf("warned = %v, want %v (%q)", got, tt.warn, buf.String())
			}
		})
	}
}
