// Package logging builds the slog loggers used across the merge pipeline.
//
// Two output formats are supported: a human-oriented console format that
// folds the component attribute into a prefix and flattens remaining
// attributes to key=value pairs, and a JSON format with ts/level/msg keys
// for machine consumption. Logs default to stderr so stdout stays free for
// command output such as chapter tables and the final summary.
//
// The package also provides shared attribute helpers, standardized field
// keys, and a ProgressSampler that keeps high-frequency encode progress
// events from flooding non-interactive logs.
package logging
