// Package preflight provides readiness checks for the filesystem paths and
// external tools a merge depends on.
//
// The CLI "audiobind doctor" command renders these results so a user can
// see at a glance whether ffmpeg and ffprobe resolve and whether the
// staging directory is writable before starting a long merge.
package preflight
