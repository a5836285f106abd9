package config

import (
	"fmt"
	"os"
	"strings"

	"prerender/internal/yamlutil"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAssets(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(strings.TrimSpace(c.Paths.CacheDir)); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.Document) == "" {
		c.Paths.Document = defaultDocument
	}
	if c.Paths.Document, err = expandPath(strings.TrimSpace(c.Paths.Document)); err != nil {
		return fmt.Errorf("paths.document: %w", err)
	}
	if strings.TrimSpace(c.Paths.QROutput) == "" {
		c.Paths.QROutput = defaultQROutput
	}
	if c.Paths.QROutput, err = expandPath(strings.TrimSpace(c.Paths.QROutput)); err != nil {
		return fmt.Errorf("paths.qr_output: %w", err)
	}
	return nil
}

// assetManifest is the YAML document referenced by assets.manifest.
type assetManifest struct {
	Assets []AssetEntry `yaml:"assets"`
}

func (c *Config) normalizeAssets() error {
	if c.Assets.RequestTimeout <= 0 {
		c.Assets.RequestTimeout = defaultRequestTimeout
	}
	c.Assets.UserAgent = strings.TrimSpace(c.Assets.UserAgent)
	if c.Assets.UserAgent == "" {
		c.Assets.UserAgent = defaultUserAgent
	}
	c.Assets.MetadataBackend = strings.ToLower(strings.TrimSpace(c.Assets.MetadataBackend))
	if c.Assets.MetadataBackend == "" {
		c.Assets.MetadataBackend = defaultMetadataBackend
	}

	c.Assets.Manifest = strings.TrimSpace(c.Assets.Manifest)
	if c.Assets.Manifest != "" {
		var err error
		if c.Assets.Manifest, err = expandPath(c.Assets.Manifest); err != nil {
			return fmt.Errorf("assets.manifest: %w", err)
		}
		extra, err := loadManifest(c.Assets.Manifest)
		if err != nil {
			return err
		}
		c.Assets.Entries = append(c.Assets.Entries, extra...)
	}

	// Destinations stay relative and uncleaned: the literal string is the
	// cache key, so rewriting it would orphan existing sidecars.
	for i := range c.Assets.Entries {
		c.Assets.Entries[i].Destination = strings.TrimSpace(c.Assets.Entries[i].Destination)
		c.Assets.Entries[i].URL = strings.TrimSpace(c.Assets.Entries[i].URL)
	}
	return nil
}

func loadManifest(path string) ([]AssetEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets.manifest: read %s: %w", path, err)
	}
	var manifest assetManifest
	if err := yamlutil.UnmarshalStrict(data, &manifest); err != nil {
		return nil, fmt.Errorf("assets.manifest: parse %s: %w", path, err)
	}
	return manifest.Assets, nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		if value, ok := os.LookupEnv("PRERENDER_LOG_LEVEL"); ok {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
