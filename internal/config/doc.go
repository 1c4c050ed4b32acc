// Package config loads, normalizes, and validates the TOML configuration
// driving batch subtitle generation.
package config
