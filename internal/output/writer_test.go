package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/i474232898/waybar-weather/internal/render"
)

func TestWriteText(t *testing.T) {
	tests := []struct {
		name string
		out  render.Output
		want string
	}{
		{"with tooltip", render.Output{Primary: "5°C", Secondary: "Berlin", HasSecondary: true, StyleClass: "cold"}, "5°C\nBerlin\n"},
		{"empty tooltip", render.Output{Primary: "5°C", HasSecondary: true}, "5°C\n\n"},
		{"without tooltip", render.Output{Primary: "5°C"}, "5°C\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(&buf, Text).Write(tt.out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestWriteJSONOmitsAbsentKeys(t *testing.T) {
	var buf bytes.Buffer
	out := render.Output{Primary: "Timeout Error", Secondary: "request timed out", HasSecondary: true}
	if err := New(&buf, JSON).Write(out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"text":"Timeout Error","tooltip":"request timed out"}` + "\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	if err := New(&buf, JSON).Write(render.Output{Primary: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "null") || strings.Contains(buf.String(), "tooltip") {
		t.Fatalf("expected absent keys to be omitted, got %q", buf.String())
	}
}

func TestWriteEmptyTooltipKeepsShape(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, JSON).Write(render.Output{Primary: "5°C", HasSecondary: true, StyleClass: "cold"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"text":"5°C","tooltip":"","class":"cold"}` + "\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	outputs := []render.Output{
		{Primary: "21°C <b>&</b>", Secondary: "Lisbon\nClear Sky", HasSecondary: true, StyleClass: "warm"},
		{Primary: "Error: 404", Secondary: "city not found", HasSecondary: true},
		{Primary: "5°C", HasSecondary: true, StyleClass: "cold"},
		{Primary: "only text"},
	}

	for _, out := range outputs {
		var buf bytes.Buffer
		if err := New(&buf, JSON).Write(out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Fatalf("expected exactly one line, got %q", buf.String())
		}

		var raw map[string]any
		if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
			t.Fatalf("invalid json %q: %v", buf.String(), err)
		}
		for key, v := range raw {
			if v == nil {
				t.Fatalf("key %q emitted as null", key)
			}
		}

		var msg Message
		if err := json.Unmarshal(buf.Bytes(), &msg); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		got := render.Output{Primary: msg.Text, StyleClass: msg.Class}
		if msg.Tooltip != nil {
			got.Secondary = *msg.Tooltip
			got.HasSecondary = true
		}
		if got != out {
			t.Fatalf("expected %+v, got %+v", out, got)
		}
	}
}

func TestWriteJSONKeepsMarkupVerbatim(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, JSON).Write(render.Output{Primary: "<span>5°C</span>"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "<span>5°C</span>") {
		t.Fatalf("expected markup unescaped, got %q", buf.String())
	}
}

type flushRecorder struct {
	bytes.Buffer
	writes  int
	flushes int
}

func (f *flushRecorder) Write(p []byte) (int, error) {
	f.writes++
	return f.Buffer.Write(p)
}

func (f *flushRecorder) Flush() error {
	f.flushes++
	return nil
}

func TestWriteFlushesEachEmission(t *testing.T) {
	rec := &flushRecorder{}
	w := New(rec, Text)

	for i := 0; i < 3; i++ {
		if err := w.Write(render.Output{Primary: "a", Secondary: "b", HasSecondary: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if rec.writes != 3 || rec.flushes != 3 {
		t.Fatalf("expected 3 writes and 3 flushes, got %d and %d", rec.writes, rec.flushes)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteReportsFailure(t *testing.T) {
	if err := New(failingWriter{}, JSON).Write(render.Output{Primary: "x"}); err == nil {
		t.Fatal("expected an error")
	}
}
