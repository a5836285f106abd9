package config

const (
	defaultCacheDir        = ".asset-cache"
	defaultDocument        = "poster.qmd"
	defaultQROutput        = "figures/qr.svg"
	defaultRequestTimeout  = 10
	defaultUserAgent       = "prerender/dev"
	defaultMetadataBackend = BackendJSON
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Metadata backends accepted by assets.metadata_backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default returns a Config populated with repository defaults. No assets are
// configured by default.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir,
			Document: defaultDocument,
			QROutput: defaultQROutput,
		},
		Assets: Assets{
			RequestTimeout:  defaultRequestTimeout,
			UserAgent:       defaultUserAgent,
			MetadataBackend: defaultMetadataBackend,
		},
		QR: QR{
			Enabled: true,
		},
		// Level stays empty so PRERENDER_LOG_LEVEL can fill it in normalize.
		Logging: Logging{
			Format: defaultLogFormat,
		},
	}
}
