package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ProjectConfigName is the file looked up in the working directory when no
// explicit path is given.
const ProjectConfigName = "prerender.toml"

// Paths contains the working locations used by both pipelines.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	Document string `toml:"document"`
	QROutput string `toml:"qr_output"`
}

// AssetEntry maps a local destination to the remote URL it mirrors.
type AssetEntry struct {
	Destination string `toml:"destination" yaml:"destination"`
	URL         string `toml:"url" yaml:"url"`
}

// Assets contains configuration for the asset mirror.
type Assets struct {
	RequestTimeout  int          `toml:"request_timeout"`
	UserAgent       string       `toml:"user_agent"`
	MetadataBackend string       `toml:"metadata_backend"`
	Manifest        string       `toml:"manifest"`
	Entries         []AssetEntry `toml:"entries"`
}

// QR contains configuration for the QR code step.
type QR struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives every record in addition to stdout/stderr.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for prerender.
//
// Configuration sections:
//   - Paths: cache directory, source document, QR output
//   - Assets: mirrored files, request timeout, metadata backend
//   - QR: toggles the QR step
//   - Logging: log format, level and optional log file
type Config struct {
	Paths   Paths   `toml:"paths"`
	Assets  Assets  `toml:"assets"`
	QR      QR      `toml:"qr"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the project configuration
// file in the working directory.
func DefaultConfigPath() (string, error) {
	return expandPath(ProjectConfigName)
}

// Load locates, parses, and validates a configuration file. The returned
// config has its paths expanded and any manifest entries merged. The string
// result is the resolved path and the bool reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	target := strings.TrimSpace(path)
	if target == "" {
		target = ProjectConfigName
	}
	expanded, err := expandPath(target)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// RequestTimeoutDuration returns the per-request asset timeout.
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.Assets.RequestTimeout) * time.Second
}

// MetadataDBPath returns the SQLite database location used when the sqlite
// metadata backend is selected.
func (c *Config) MetadataDBPath() string {
	return filepath.Join(c.Paths.CacheDir, "metadata.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
