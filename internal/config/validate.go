package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return errors.New("paths.cache_dir must be set")
	}
	if c.QR.Enabled {
		if strings.TrimSpace(c.Paths.Document) == "" {
			return errors.New("paths.document must be set when qr.enabled is true")
		}
		if strings.TrimSpace(c.Paths.QROutput) == "" {
			return errors.New("paths.qr_output must be set when qr.enabled is true")
		}
	}
	return nil
}

func (c *Config) validateAssets() error {
	if c.Assets.RequestTimeout <= 0 {
		return errors.New("assets.request_timeout must be positive (seconds)")
	}
	switch c.Assets.MetadataBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("assets.metadata_backend: unsupported value %q (use %q or %q)", c.Assets.MetadataBackend, BackendJSON, BackendSQLite)
	}

	seen := make(map[string]struct{}, len(c.Assets.Entries))
	for i, entry := range c.Assets.Entries {
		if entry.Destination == "" {
			return fmt.Errorf("assets.entries[%d]: destination must be set", i)
		}
		if _, dup := seen[entry.Destination]; dup {
			return fmt.Errorf("assets.entries[%d]: duplicate destination %q", i, entry.Destination)
		}
		seen[entry.Destination] = struct{}{}
		if err := validateAssetURL(entry.URL); err != nil {
			return fmt.Errorf("assets.entries[%d] (%s): %w", i, entry.Destination, err)
		}
	}
	return nil
}

func validateAssetURL(raw string) error {
	if raw == "" {
		return errors.New("url must be set")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
