// Package output prints rendered results for the status bar host.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/i474232898/waybar-weather/internal/render"
)

// Mode selects the output encoding.
type Mode int

const (
	JSON Mode = iota
	Text
)

func (m Mode) String() string {
	if m == Text {
		return "text"
	}
	return "json"
}

// Message is the JSON object understood by waybar custom modules.
type Message struct {
	Text    string  `json:"text"`
	Tooltip *string `json:"tooltip,omitempty"`
	Class   string  `json:"class,omitempty"`
}

type flusher interface {
	Flush() error
}

// Writer emits one block per cycle.
type Writer struct {
	w    io.Writer
	mode Mode
}

func New(w io.Writer, mode Mode) *Writer {
	return &Writer{w: w, mode: mode}
}

// Write encodes out and flushes it in a single write so the host never
// sees a partial cycle.
func (w *Writer) Write(out render.Output) error {
	var buf bytes.Buffer

	switch w.mode {
	case Text:
		buf.WriteString(out.Primary)
		buf.WriteByte('\n')
		if out.HasSecondary {
			buf.WriteString(out.Secondary)
			buf.WriteByte('\n')
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		msg := Message{Text: out.Primary, Class: out.StyleClass}
		if out.HasSecondary {
			msg.Tooltip = &out.Secondary
		}
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
	}

	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if f, ok := w.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	return nil
}
