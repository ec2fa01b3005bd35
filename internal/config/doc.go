// Package config holds the settings of a rangescan run.
//
// Settings are layered, lowest precedence first:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML chosen by extension (LoadFile)
//  3. RANGESCAN_* environment variables (ApplyEnv)
//  4. Command-line flags, applied by the caller
//
// Validate checks the merged result.
//
// Example TOML configuration:
//
//	query = "foo"
//	mode = "reassemble"
//	match_transform = "capitalize"
//	gap_transform = "lua:shout"
//	script = "transforms.lua"
//
//	[output]
//	format = "json"
//	pretty = true
//
//	[watch]
//	enabled = true
//	debounce = "200ms"
package config
