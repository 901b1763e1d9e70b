// Package config provides the configuration system for modalkit.
//
// Configuration is layered, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. Environment variables prefixed MODALKIT_
//
// # Configuration Files
//
//	# ~/.config/modalkit/config.toml
//	[input]
//	sequence_timeout_ms = 1000
//	max_count = 10000
//
//	[editor]
//	tab_width = 8
//	shift_width = 4
//	expand_tab = false
//	undo_levels = 1000
//
//	[clipboard]
//	enabled = true
//
//	[plugins]
//	scripts = ["~/.config/modalkit/motions.lua"]
//
//	[logging]
//	level = "info"
//
//	[remap]
//	"<C-c>" = "<Esc>"
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources
//   - watcher: file watching for live reload
package config
