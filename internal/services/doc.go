// Package services defines the failure taxonomy shared by the merge pipeline
// components and the CLI.
//
// Key responsibilities:
//   - Sentinel error markers for each failure kind the tool can report
//     (invalid input, probe, metadata encoding, encode, tag embed).
//   - The Wrap helper that tags errors with a marker while preserving
//     component and operation context in the message.
//   - The ExitCode mapping that turns a marker into the distinct process
//     exit code scripts rely on.
//
// Pipeline code never catches and continues: every failure is wrapped once at
// its source and propagates verbatim to the CLI, which prints it and exits
// with the mapped code.
package services
