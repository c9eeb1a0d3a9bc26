// Package config loads and validates marcpd configuration.
//
// Configuration comes from a TOML file (default ~/.config/marcpd/config.toml)
// layered over built-in defaults. All tunable matching constants live here:
// thresholds, scenario weights, guard penalties, and the batch pipeline
// settings. Loading happens once at startup; the resulting Config is passed
// by reference and never mutated afterward.
package config
