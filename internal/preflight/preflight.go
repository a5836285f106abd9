package preflight

import (
	"context"
	"net/http"

	"prerender/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects the optional checks.
type Options struct {
	// ProbeRemote sends a HEAD request to every asset URL.
	ProbeRemote bool
	HTTPClient  *http.Client
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if len(cfg.Assets.Entries) > 0 {
		results = append(results, CheckWritableTarget("Cache directory", cfg.Paths.CacheDir))
		for _, entry := range cfg.Assets.Entries {
			results = append(results, CheckWritableTarget("Asset "+entry.Destination, entry.Destination))
		}
	}

	if cfg.QR.Enabled {
		results = append(results, CheckDocument("Document", cfg.Paths.Document))
		results = append(results, CheckWritableTarget("QR output", cfg.Paths.QROutput))
	}

	if opts.ProbeRemote {
		client := opts.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.RequestTimeoutDuration()}
		}
		for _, entry := range cfg.Assets.Entries {
			results = append(results, CheckAssetURL(ctx, client, entry.URL, cfg.Assets.UserAgent))
		}
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
