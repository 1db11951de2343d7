package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/jsamuelsen11/storefront-shops/internal/platform/logging"
)

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"json", "json", `"level":"INFO"`},
		{"text", "text", "level=INFO"},
		{"unknown falls back to json", "xml", `"level":"INFO"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", tt.format, &buf).Info("browsing shops")

			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want it to contain %q", out, tt.want)
			}
			if !strings.Contains(out, "browsing shops") {
				t.Errorf("output = %q, want the message", out)
			}
		})
	}
}

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		log      func(*slog.Logger)
		wantSeen bool
	}{
		{"debug passes at debug", "debug", func(l *slog.Logger) { l.Debug("m") }, true},
		{"debug filtered at info", "info", func(l *slog.Logger) { l.Debug("m") }, false},
		{"warn filtered at error", "error", func(l *slog.Logger) { l.Warn("m") }, false},
		{"unknown level means info", "verbose", func(l *slog.Logger) { l.Info("m") }, true},
		{"unknown level filters debug", "verbose", func(l *slog.Logger) { l.Debug("m") }, false},
		{"level is case-insensitive", "DEBUG", func(l *slog.Logger) { l.Debug("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.log(logging.New(tt.level, "json", &buf))

			if seen := buf.Len() > 0; seen != tt.wantSeen {
				t.Errorf("message emitted = %v, want %v (output %q)", seen, tt.wantSeen, buf.String())
			}
		})
	}
}

func TestNew_SourceOnlyAtDebug(t *testing.T) {
	t.Parallel()

	var debugBuf, infoBuf bytes.Buffer
	logging.New("debug", "json", &debugBuf).Debug("x")
	logging.New("info", "json", &infoBuf).Info("x")

	if !strings.Contains(debugBuf.String(), `"source"`) {
		t.Errorf("debug output = %q, want a source attribute", debugBuf.String())
	}
	if strings.Contains(infoBuf.String(), `"source"`) {
		t.Errorf("info output = %q, want no source attribute", infoBuf.String())
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext on bare context should return slog.Default()")
	}

	first := logging.Discard()
	second := logging.New("info", "json", &bytes.Buffer{})

	ctx := logging.WithLogger(context.Background(), first)
	if logging.FromContext(ctx) != first {
		t.Error("FromContext did not return the stored logger")
	}

	ctx = logging.WithLogger(ctx, second)
	if logging.FromContext(ctx) != second {
		t.Error("FromContext did not return the most recently stored logger")
	}
}

func TestNew_Redaction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		attr   slog.Attr
		secret string
	}{
		{"authorization field", slog.String("authorization", "Bearer supersecret-token"), "supersecret-token"},
		{"cookie field", slog.String("cookie", "session=abc123"), "abc123"},
		{"password field", slog.String("password", "hunter2"), "hunter2"},
		{"bearer value anywhere", slog.String("raw_header", "Bearer eyJhbGciOiJSUzI1NiJ9"), "eyJhbGciOiJSUzI1NiJ9"},
		{"inline api key", slog.String("note", "api_key=sk-live-42"), "sk-live-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logging.New("info", "json", &buf).Info("event", tt.attr)

			out := buf.String()
			if strings.Contains(out, tt.secret) {
				t.Errorf("output = %q, want %q redacted", out, tt.secret)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("output = %q, want a [REDACTED] marker", out)
			}
		})
	}
}

func TestNew_KeepsShopFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logging.New("info", "json", &buf).Info("shops fetched",
		slog.String("city", "Seattle"),
		slog.String("path", "/api/drinks/?sort=name&city=Seattle"),
	)

	out := buf.String()
	if !strings.Contains(out, "Seattle") || !strings.Contains(out, "/api/drinks/") {
		t.Errorf("output = %q, want non-sensitive fields intact", out)
	}
}
