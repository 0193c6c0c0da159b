// Package config loads, normalizes, and validates audiobind configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from an explicit --config path,
// ~/.config/audiobind/config.toml, or audiobind.toml in the working
// directory, in that order. The Config type centralizes every knob the CLI
// needs: external tool binaries, the staging directory, destination
// overwrite behavior, chapter title derivation, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
