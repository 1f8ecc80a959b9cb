// Package config loads the declarative description of behaviors and the
// keymap, validates it, and builds the runtime objects from it.
//
// A configuration file lists behavior instances and a keymap:
//
//	default_os = "windows"
//
//	[[behavior]]
//	name = "copy"
//	type = "os-key"
//	bindings = ["&kp LC(C)", "&kp LG(C)", "&kp LC(C)"]
//
//	[[behavior]]
//	name = "tile_left"
//	type = "hold-fn"
//	bindings = ["&kp GLOBE", "&kp LC(LEFT)"]
//
//	[[behavior]]
//	name = "os_sel"
//	type = "os-selector"
//
//	[keymap]
//	bindings = ["&copy", "&tile_left", "&os_sel OS_MAC", "&kp A"]
//
// TOML and YAML files are accepted; the format follows the file extension.
// Environment variables prefixed OSKEY_ override file values.
//
// The dispatch code never sees this package's types. Build turns a File into
// behavior configuration structs once, at startup.
package config
