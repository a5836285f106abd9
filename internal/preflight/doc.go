// Package preflight provides readiness checks for the paths and remote
// sources a pre-render run depends on.
//
// The CLI "prerender config validate --preflight" command runs them and
// reports each result. Filesystem checks never create anything; a missing
// directory passes when its nearest existing ancestor is writable, since
// the run creates it on demand. Remote probes are opt-in.
package preflight
