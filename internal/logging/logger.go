package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prerender/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Stdout receives records below error level. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives error-level records. Defaults to os.Stderr.
	Stderr io.Writer
	// File, when set, additionally receives every record. The caller owns it.
	File io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	addSource := level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var build func(io.Writer) slog.Handler
	switch format {
	case "json":
		build = func(w io.Writer) slog.Handler { return newJSONHandler(w, levelVar, addSource) }
	case "console":
		build = func(w io.Writer) slog.Handler { return newConsoleHandler(w, levelVar, addSource) }
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	routes := []route{
		{handler: build(stdout), min: slog.LevelDebug, below: slog.LevelError, bounded: true},
		{handler: build(stderr), min: slog.LevelError},
	}
	if opts.File != nil {
		routes = append(routes, route{handler: build(opts.File), min: slog.LevelDebug})
	}

	return slog.New(newRouteHandler(routes...)), nil
}

// NewFromConfig creates a logger using the configured level, format and
// optional log file. The returned close func releases the log file and is
// never nil.
func NewFromConfig(cfg *config.Config, stdout, stderr io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	opts := Options{
		Level:  "info",
		Format: "console",
		Stdout: stdout,
		Stderr: stderr,
	}
	if cfg != nil {
		opts.Level = cfg.Logging.Level
		opts.Format = cfg.Logging.Format
	}

	var file *os.File
	if cfg != nil && strings.TrimSpace(cfg.Logging.File) != "" {
		var err error
		if file, err = openLogFile(cfg.Logging.File); err != nil {
			return nil, noop, err
		}
		opts.File = file
	}
	logger, err := New(opts)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, noop, err
	}
	if file == nil {
		return logger, noop, nil
	}
	return logger, file.Close, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info", "":
		return slog.LevelInfo
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
