// Package ffmpeg shells out to ffmpeg for the two lossless passes of a
// merge: concatenating the ordered inputs with the concat demuxer, then
// embedding tags, chapters, and cover art from an FFMETADATA document.
//
// Both passes run with -c copy, so audio bytes are never re-encoded. The
// Client interface lets the orchestrator and its tests substitute fakes for
// the real binary, and WriteMergeList produces the quoted file list the
// concat demuxer consumes.
package ffmpeg
