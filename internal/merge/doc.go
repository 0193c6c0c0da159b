// Package merge sequences the pipeline that turns an ordered list of audio
// files into one chaptered MP3: validate the request, probe durations, plan
// chapter boundaries, concat-encode, embed metadata and cover art, verify,
// and atomically publish.
//
// The orchestrator owns every intermediate artifact (the mergelist, the
// concat intermediate, the metadata document, and the pre-publish temp) and
// removes them on each exit path the process survives. The destination is
// written by renaming a temp that lives beside it, so a failed run never
// leaves a partial output. A flock next to the destination keeps concurrent
// invocations from racing on the same file.
//
// The state machine is validating -> encoding -> tagging -> done, with any
// state able to fail terminally. Probing happens under validating since it
// gathers data without side effects.
//
// Known limitation: a forced interrupt (SIGKILL) terminates the process
// before the deferred cleanup runs, which can strand temp files in the
// staging directory.
package merge
