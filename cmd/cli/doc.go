// Package cli constructs the git-cat command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the catalogue and fleet services.
package cli
