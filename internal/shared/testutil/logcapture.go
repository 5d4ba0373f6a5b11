// Package testutil captures slog output so tests can assert on what a
// component logged.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// CapturedRecord is one log call seen by a LogCapture
type CapturedRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that keeps every record in memory
type LogCapture struct {
	mu      *sync.Mutex
	records *[]CapturedRecord
	attrs   []slog.Attr
	t       testing.TB
}

// NewLogCapture creates an empty capture; records are echoed to t.Log when t is set
func NewLogCapture(t testing.TB) *LogCapture {
	return &LogCapture{
		mu:      &sync.Mutex{},
		records: &[]CapturedRecord{},
		t:       t,
	}
}

// NewCaptureLogger returns a logger writing into a fresh capture
func NewCaptureLogger(t testing.TB) (*slog.Logger, *LogCapture) {
	capture := NewLogCapture(t)
	return slog.New(capture), capture
}

// Enabled implements slog.Handler
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.attrs)+r.NumAttrs())
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.mu.Lock()
	*c.records = append(*c.records, CapturedRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler; derived handlers share the record store
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &LogCapture{mu: c.mu, records: c.records, attrs: merged, t: c.t}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (c *LogCapture) WithGroup(string) slog.Handler {
	return c
}

// Records returns the captured records at level, or all of them when level is nil
func (c *LogCapture) Records(level *slog.Level) []CapturedRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []CapturedRecord
	for _, r := range *c.records {
		if level == nil || r.Level == *level {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the records at level whose message contains substr
func (c *LogCapture) Find(level slog.Level, substr string) []CapturedRecord {
	var out []CapturedRecord
	for _, r := range c.Records(&level) {
		if strings.Contains(r.Message, substr) {
			out = append(out, r)
		}
	}
	return out
}

// AssertLogged fails the test unless a record at level contains substr
func AssertLogged(t testing.TB, capture *LogCapture, level slog.Level, substr string) {
	t.Helper()
	if len(capture.Find(level, substr)) > 0 {
		return
	}
	t.Errorf("expected %s log containing %q", level, substr)
	for _, r := range capture.Records(nil) {
		t.Logf("  captured [%s] %s", r.Level, r.Message)
	}
}

// AssertNotLogged fails the test if any record at level was captured
func AssertNotLogged(t testing.TB, capture *LogCapture, level slog.Level) {
	t.Helper()
	for _, r := range capture.Records(&level) {
		t.Errorf("unexpected %s log: %s %v", level, r.Message, r.Attrs)
	}
}
