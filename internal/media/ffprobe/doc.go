// Package ffprobe provides the duration prober: a typed wrapper around
// ffprobe JSON output behind a small Client interface so tests can
// substitute fake probes.
//
// Key types:
//   - Client: the probing capability (Inspect full details, Probe duration)
//   - CLI: Client implementation shelling out to the ffprobe binary
//   - Result: parsed ffprobe output containing streams and format metadata
//
// Durations drives Client.Probe over an ordered input list, aborting on the
// first failure so the merge never proceeds with partial information.
// Durations are rounded once to whole milliseconds at parse time; all later
// chapter arithmetic is integer.
package ffprobe
