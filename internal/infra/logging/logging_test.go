//go:build !integration

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"vendor-subscription-checkout/internal/config"
)

func TestWith_AttachesContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := newWithWriter(&buf, config.LogConfig{Level: "info", Format: "json"}, false)

	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithEventID(ctx, "evt_1")
	With(ctx, base).Info().Msg("hello")

	out := buf.String()
	for _, want := range []string{`"trace_id":"trace-1"`, `"event_id":"evt_1"`, `"message":"hello"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %s", out, want)
		}
	}
	if strings.Contains(out, "session_id") {
		t.Errorf("unexpected session_id in %q", out)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, config.LogConfig{Level: "warn", Format: "json"}, false)
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn line missing")
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("acct_1234567890", false); got != "acct...90" {
		t.Errorf("Redact = %q", got)
	}
	if got := Redact("short", false); got != "***" {
		t.Errorf("Redact short = %q", got)
	}
	if got := Redact("acct_1234567890", true); got != "acct_1234567890" {
		t.Errorf("Redact dev = %q", got)
	}
}

func TestTraceIDFrom(t *testing.T) {
	if TraceIDFrom(context.Background()) != "" {
		t.Fatal("expected empty trace id")
	}
	if TraceIDFrom(WithTraceID(context.Background(), "t")) != "t" {
		t.Fatal("trace id not round-tripped")
	}
}
