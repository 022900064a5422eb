// Package mirror implements the bare repository mirroring workflow.
//
// It reconciles each repository to a single origin remote, fetches branch
// updates with mirror semantics, accumulates per-repository outcomes into a
// status report, and loads the YAML manifest describing the repositories to
// process.
package mirror
