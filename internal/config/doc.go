// Package config loads frontctl configuration files.
//
// A configuration file is TOML (.toml) or YAML (.yaml, .yml) and holds the
// dispatcher switches, the event names to register, the log level and the
// paths of the layout document and Lua scripts:
//
//	catch_errors = true
//	unknown_controller = "skip"
//	log_level = "debug"
//	events = ["click", "enterpress", "focus", "blur"]
//	layout = "layout.yaml"
//	scripts = ["menu.lua"]
//
// Relative paths are resolved against the directory of the configuration
// file. FRONTCTL_* environment variables override file values, and a
// Watcher reloads the file when it changes on disk.
package config
