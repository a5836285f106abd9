// Package logging assembles the structured slog loggers used by prerender.
//
// It owns the console and JSON handlers and routes records by severity:
// error-level records go to the error stream, everything else to standard
// output, which is what a document build expects from a pre-render hook.
// Helpers attach the run identifier and component names so every line from
// one invocation can be correlated.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit lines with the same shape and routing as the rest of the tool.
package logging
