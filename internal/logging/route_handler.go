package logging

import (
	"context"
	"log/slog"
)

// route sends records in [min, below) to handler. An unbounded route accepts
// everything at or above min.
type route struct {
	handler slog.Handler
	min     slog.Level
	below   slog.Level
	bounded bool
}

func (r route) accepts(level slog.Level) bool {
	if level < r.min {
		return false
	}
	return !r.bounded || level < r.below
}

// routeHandler delivers each record to every route whose level window
// contains it.
type routeHandler struct {
	routes []route
}

func newRouteHandler(routes ...route) slog.Handler {
	filtered := make([]route, 0, len(routes))
	for _, r := range routes {
		if r.handler != nil {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		return NoopHandler{}
	}
	return &routeHandler{routes: filtered}
}

func (h *routeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, r := range h.routes {
		if r.accepts(level) && r.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *routeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for idx, r := range h.routes {
		if !r.accepts(record.Level) || !r.handler.Enabled(ctx, record.Level) {
			continue
		}
		rec := record
		if idx < len(h.routes)-1 {
			rec = record.Clone()
		}
		if err := r.handler.Handle(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *routeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]route, len(h.routes))
	for i, r := range h.routes {
		r.handler = r.handler.WithAttrs(attrs)
		next[i] = r
	}
	return &routeHandler{routes: next}
}

func (h *routeHandler) WithGroup(name string) slog.Handler {
	next := make([]route, len(h.routes))
	for i, r := range h.routes {
		r.handler = r.handler.WithGroup(name)
		next[i] = r
	}
	return &routeHandler{routes: next}
}
