// Package cli constructs the init-repo command-line interface, wiring the
// Cobra command hierarchy, the configuration loader shared with the host
// profile store, and structured logging.
package cli
