// Package config loads, normalizes, and validates shortreel configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// SHORTREEL_DATA_DIR and SHORTREEL_FFMPEG. The Config type centralizes every
// knob the render stages and CLI need: the data directory that holds project
// artifacts, encoder targets, caption styling, and the background music bed.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
