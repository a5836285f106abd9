// Package main hosts the prerender CLI entrypoint and command graph.
//
// The Cobra command tree runs the two pre-render steps used by the document
// build: mirroring remote brand assets into the working tree and rendering
// the footer QR code. It owns configuration resolution, logger construction
// and the per-run lock so the internal packages stay free of process
// concerns.
package main
