package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRouteHandlerNilHandlers(t *testing.T) {
	h := newRouteHandler(route{}, route{})
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestRouteAccepts(t *testing.T) {
	below := route{below: slog.LevelError, min: slog.LevelDebug, bounded: true}
	above := route{min: slog.LevelError}

	cases := []struct {
		level     slog.Level
		wantBelow bool
		wantAbove bool
	}{
		{slog.LevelDebug, true, false},
		{slog.LevelInfo, true, false},
		{slog.LevelWarn, true, false},
		{slog.LevelError, false, true},
		{slog.LevelError + 4, false, true},
	}
	for _, tc := range cases {
		if got := below.accepts(tc.level); got != tc.wantBelow {
			t.Errorf("below.accepts(%v) = %v, want %v", tc.level, got, tc.wantBelow)
		}
		if got := above.accepts(tc.level); got != tc.wantAbove {
			t.Errorf("above.accepts(%v) = %v, want %v", tc.level, got, tc.wantAbove)
		}
	}
}

func TestRouteHandlerEnabledRespectsInnerLevel(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := newRouteHandler(route{handler: inner, min: slog.LevelDebug})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info to be disabled by inner handler level")
	}
	if !h.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warn to be enabled")
	}
}

func TestRouteHandlerWithAttrsPropagates(t *testing.T) {
	var out, errOut bytes.Buffer
	h := newRouteHandler(
		route{handler: slog.NewJSONHandler(&out, nil), below: slog.LevelError, bounded: true},
		route{handler: slog.NewJSONHandler(&errOut, nil), min: slog.LevelError},
	)
	logger := slog.New(h).With("run_id", "abc")
	logger.Info("one")
	logger.Error("two")

	if !strings.Contains(out.String(), `"run_id":"abc"`) || strings.Contains(out.String(), "two") {
		t.Errorf("unexpected stdout: %s", out.String())
	}
	if !strings.Contains(errOut.String(), `"run_id":"abc"`) || strings.Contains(errOut.String(), "one") {
		t.Errorf("unexpected stderr: %s", errOut.String())
	}
}

func TestRouteHandlerDeliversDebugBelowError(t *testing.T) {
	var out, errOut bytes.Buffer
	debug := &slog.HandlerOptions{Level: slog.LevelDebug}
	h := newRouteHandler(
		route{handler: slog.NewJSONHandler(&out, debug), min: slog.LevelDebug, below: slog.LevelError, bounded: true},
		route{handler: slog.NewJSONHandler(&errOut, debug), min: slog.LevelError},
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled")
	}
	slog.New(h).Debug("acquired run lock")

	if !strings.Contains(out.String(), "acquired run lock") {
		t.Fatalf("expected debug record on the lower route, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("debug record leaked to the error route: %q", errOut.String())
	}
}
