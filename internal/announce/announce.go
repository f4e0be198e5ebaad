package announce

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// State is the reported power state of an appliance transition.
type State string

const (
	StateOn  State = "on"
	StateOff State = "off"
)

// Message is a single appliance transition announcement.
//
// Text carries the full human-readable sentence exactly as the appliance
// worded it; panels, logs and transcripts display it verbatim. The
// remaining fields exist for structured consumers (WebSocket events,
// MQTT payloads, metrics).
type Message struct {
	Appliance string    `json:"appliance"` // display name, e.g. "air condition"
	Kind      string    `json:"kind"`      // machine kind, e.g. "air_conditioning"
	State     State     `json:"state"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

// Sink receives appliance announcements.
//
// Implementations must be safe for concurrent use; a single sink instance
// is shared by every appliance on the roster.
type Sink interface {
	Announce(ctx context.Context, msg Message) error
}

// Discard is a Sink that drops every announcement.
// Useful as a default when no output is wired, and in tests.
var Discard Sink = discard{}

type discard struct{}

func (discard) Announce(context.Context, Message) error { return nil }

// WriterSink prints announcement text to an io.Writer, one line per
// transition. This is the sink behind the demo walkthrough (stdout) and
// test transcripts (bytes.Buffer).
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink wrapping w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Announce writes the message text followed by a newline.
func (s *WriterSink) Announce(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintln(s.w, msg.Text); err != nil {
		return fmt.Errorf("announce: writing: %w", err)
	}
	return nil
}

// Fanout delivers each announcement to several sinks in order.
//
// Every sink is attempted even when an earlier one fails; the first
// error is returned. A slow or broken side channel (MQTT, metrics) must
// not silence the primary transcript.
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a Fanout over the given sinks. Nil sinks are skipped.
func NewFanout(sinks ...Sink) *Fanout {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Fanout{sinks: kept}
}

// Announce delivers msg to every sink, returning the first error seen.
func (f *Fanout) Announce(ctx context.Context, msg Message) error {
	var firstErr error
	for _, s := range f.sinks {
		if err := s.Announce(ctx, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
