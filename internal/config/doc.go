// Package config loads, normalizes, and validates cinelookup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY and OMDB_API_KEY. The TMDB key may also live in a plain-text
// key file, which the CLI writes with 'config set-key'.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language tags, and clear validation errors.
package config
