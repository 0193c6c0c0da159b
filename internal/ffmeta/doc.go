// Package ffmeta renders the FFMETADATA1 description consumed by the
// ffmpeg tag-embedding pass: global key=value tags for the supplied
// metadata fields, then one [CHAPTER] block per planned chapter with
// millisecond timestamps.
//
// Values are backslash-escaped for the format's reserved characters.
// Values containing control characters, and release dates that do not
// parse as YYYY-MM-DD, are rejected rather than written corrupt.
package ffmeta
