// Package main hosts the audiobind CLI entrypoint and command graph.
//
// The root command is the merge itself: it translates flags into a merge
// request, attaches terminal progress display, and maps pipeline failures
// to distinct exit codes. Auxiliary commands cover environment checks
// (doctor) and configuration scaffolding (config init/show/path).
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through flags or dedicated commands here.
// That separation keeps the CLI declarative while the pipeline logic stays
// reusable and testable.
package main
