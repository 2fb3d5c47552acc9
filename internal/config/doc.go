// Package config loads, normalizes, and validates the vodub TOML
// configuration. All path fields are expanded and absolute after Load;
// consumers never deal with "~" or relative paths.
package config
