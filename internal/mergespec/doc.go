// Package mergespec defines the request model shared by the CLI and the
// merge pipeline: the ordered input files, the destination path, and the
// optional global metadata. It also owns chapter title derivation from
// input filenames.
package mergespec
