// Package config loads, normalizes, and validates prerender configuration.
//
// It supplies defaults that match the conventional project layout (a
// poster.qmd document, figures/ for outputs, .asset-cache/ for validator
// sidecars), reads the project TOML file, and optionally merges asset entries
// from a YAML manifest. Asset destinations are kept exactly as written since
// they double as cache keys; every other path is expanded to an absolute
// path.
//
// Obtain settings through Load so downstream packages receive trimmed values,
// canonical log formats, and clear validation errors.
package config
