package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"prerender/internal/config"
	"prerender/internal/fileutil"
	"prerender/internal/logging"
	"prerender/internal/metastore"
)

const (
	defaultUserAgent = "prerender/dev"
	defaultTimeout   = 10 * time.Second
)

// Options configures the HTTP side of the mirror.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Mirror syncs asset entries against their remote sources.
type Mirror struct {
	store     metastore.Store
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// New creates a Mirror that records validators in store.
func New(store metastore.Store, logger *slog.Logger, opts Options) (*Mirror, error) {
	if store == nil {
		return nil, errors.New("mirror: metadata store is required")
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Mirror{
		store:     store,
		http:      client,
		userAgent: userAgent,
		logger:    logging.NewComponentLogger(logger, "mirror"),
	}, nil
}

// OptionsFromConfig maps the [assets] section onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		UserAgent: cfg.Assets.UserAgent,
		Timeout:   cfg.RequestTimeoutDuration(),
	}
}

// SyncAll syncs entries in order. It stops early only when ctx is done.
func (m *Mirror) SyncAll(ctx context.Context, entries []config.AssetEntry) []Result {
	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		results = append(results, m.Sync(ctx, entry))
	}
	return results
}

// Sync brings one destination up to date. It never returns an error; the
// outcome is carried by the Result and a single log line.
func (m *Mirror) Sync(ctx context.Context, entry config.AssetEntry) Result {
	logger := logging.WithContext(ctx, m.logger).With(
		logging.String(logging.FieldDestination, entry.Destination),
	)
	res := Result{Destination: entry.Destination, URL: entry.URL}
	key := metastore.Key(entry.Destination)

	rec, found, err := m.store.Get(ctx, key)
	if err != nil {
		// Fetch unconditionally; the next successful download rewrites the record.
		logger.Warn("ignoring unreadable cache metadata", logging.Error(err))
		found = false
	}
	localExists := fileutil.FileExists(entry.Destination)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return m.unreachable(logger, res, localExists, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", m.userAgent)
	if found && localExists && rec.HasValidators() {
		logger.Debug("sending conditional request")
		if etag := rec.ETagValue(); etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
		if lastModified := rec.LastModifiedValue(); lastModified != "" {
			req.Header.Set("If-Modified-Since", lastModified)
		}
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return m.unreachable(logger, res, localExists, err)
	}
	defer resp.Body.Close()
	res.Code = resp.StatusCode

	if resp.StatusCode == http.StatusNotModified {
		res.Status = NotModified
		logger.Info("up to date", logging.Int(logging.FieldStatusCode, resp.StatusCode))
		return res
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return m.remoteError(logger, res, localExists, "remote error")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Code = 0
		return m.unreachable(logger, res, localExists, fmt.Errorf("read body: %w", err))
	}

	if err := fileutil.WriteFileAtomicMkdir(entry.Destination, body, 0o644); err != nil {
		res.Err = fmt.Errorf("write destination: %w", err)
		return m.remoteError(logger, res, localExists, "write failed")
	}

	next := metastore.NewRecord(resp.Header.Get("ETag"), resp.Header.Get("Last-Modified"))
	if err := m.store.Put(ctx, key, next); err != nil {
		logger.Warn("failed to store cache metadata", logging.Error(err))
	}

	res.Status = Downloaded
	res.Bytes = len(body)
	logger.Info("downloaded",
		logging.Int(logging.FieldStatusCode, resp.StatusCode),
		logging.Int("bytes", len(body)),
	)
	return res
}

func (m *Mirror) remoteError(logger *slog.Logger, res Result, localExists bool, reason string) Result {
	attrs := logging.Args(
		logging.String(logging.FieldURL, res.URL),
		logging.Error(res.Err),
	)
	if res.Code != 0 {
		attrs = append(attrs, logging.Int(logging.FieldStatusCode, res.Code))
	}
	if localExists {
		res.Status = RemoteError
		res.CachedCopy = true
		logger.Warn(reason+", using cached copy", attrs...)
		return res
	}
	res.Status = Missing
	logger.Error(reason+" and no cached copy", attrs...)
	return res
}

func (m *Mirror) unreachable(logger *slog.Logger, res Result, localExists bool, cause error) Result {
	res.Err = cause
	attrs := logging.Args(
		logging.String(logging.FieldURL, res.URL),
		logging.Error(cause),
	)
	if localExists {
		res.Status = RemoteUnreachable
		res.CachedCopy = true
		logger.Warn("offline, using cached copy", attrs...)
		return res
	}
	res.Status = Missing
	logger.Error("missing and offline, cannot fetch", attrs...)
	return res
}
