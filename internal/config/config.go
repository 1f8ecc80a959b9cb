package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Behavior types accepted in a File.
const (
	TypeOSKey      = "os-key"
	TypeHoldFn     = "hold-fn"
	TypeOSSelector = "os-selector"
)

// Built-in behavior names. They are always registered and cannot be
// redefined.
const (
	BuiltinKeyPress = "kp"
	BuiltinNone     = "none"
	BuiltinTrans    = "trans"
)

// File is the on-disk configuration.
type File struct {
	// DefaultOS initializes the OS store. Defaults to windows.
	DefaultOS string `toml:"default_os" yaml:"default_os"`

	// MaxDepth limits binding nesting. Zero uses the router default.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`

	// Behaviors lists the behavior instances.
	Behaviors []BehaviorSpec `toml:"behavior" yaml:"behavior"`

	// Keymap binds key positions.
	Keymap KeymapSpec `toml:"keymap" yaml:"keymap"`
}

// BehaviorSpec declares one behavior instance.
type BehaviorSpec struct {
	// Name is the handle bindings use, as in "&name".
	Name string `toml:"name" yaml:"name"`

	// Type is one of TypeOSKey, TypeHoldFn or TypeOSSelector.
	Type string `toml:"type" yaml:"type"`

	// Bindings are the candidate bindings: windows, macos, linux for an
	// os-key; hold, tap for a hold-fn; none for an os-selector.
	Bindings []string `toml:"bindings" yaml:"bindings"`

	// OS fixes the OS an os-selector writes. When empty the OS comes from
	// the binding parameter.
	OS string `toml:"os" yaml:"os"`
}

// KeymapSpec binds key positions in order.
type KeymapSpec struct {
	Bindings []string `toml:"bindings" yaml:"bindings"`
}

// DefaultPath returns the default configuration file location,
// $XDG_CONFIG_HOME/oskey/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "oskey", "config.toml")
}

// arity returns the number of bindings a behavior type requires.
func arity(typ string) (int, bool) {
	switch typ {
	case TypeOSKey:
		return 3, true
	case TypeHoldFn:
		return 2, true
	case TypeOSSelector:
		return 0, true
	default:
		return 0, false
	}
}
