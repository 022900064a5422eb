// Package cli constructs the git-bare-sync command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. Running the root command without a subcommand performs the
// default fetch action.
package cli
