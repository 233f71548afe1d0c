// Package config loads, normalizes, and validates subdeck configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SUBDECK_OUTPUT_DIR
// environment fallback. The Config type centralizes every knob the card
// pipeline, deck writer and CLI need so they can be resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
