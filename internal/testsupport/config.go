package testsupport

import (
	"path/filepath"
	"testing"

	"prerender/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths live under a per-test temp
// directory. It applies any provided options after the defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CacheDir = filepath.Join(base, ".asset-cache")
	cfgVal.Paths.Document = filepath.Join(base, "poster.qmd")
	cfgVal.Paths.QROutput = filepath.Join(base, "figures", "qr.svg")
	cfgVal.Assets.RequestTimeout = 2
	cfgVal.Logging.Level = "info"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithAsset appends an entry whose destination is rel under the base dir.
func WithAsset(rel, url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assets.Entries = append(b.cfg.Assets.Entries, config.AssetEntry{
			Destination: filepath.Join(b.baseDir, rel),
			URL:         url,
		})
	}
}

// WithBackend selects the metadata backend.
func WithBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Assets.MetadataBackend = backend
	}
}

// WithDocument writes content to the configured document path.
func WithDocument(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Paths.Document, content)
	}
}

// WithQRDisabled turns off the QR step.
func WithQRDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.QR.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CacheDir)
}
