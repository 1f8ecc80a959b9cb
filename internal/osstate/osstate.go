// Package osstate holds the currently selected target operating system.
//
// The Store is a single mutable cell. OS selector behaviors write it on press
// and OS-aware keys read it on press; nothing else touches it. Dispatch is
// single-threaded, so the Store does no locking of its own.
package osstate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OS identifies a target operating system.
type OS uint8

// Numeric values match the OS_WIN/OS_MAC/OS_LIN keymap constants.
const (
	Windows OS = iota
	MacOS
	Linux
)

// ErrUnknownOS indicates an OS name or value that is not recognized.
var ErrUnknownOS = errors.New("osstate: unknown os")

// All returns every known OS in numeric order.
func All() []OS {
	return []OS{Windows, MacOS, Linux}
}

// Valid reports whether o is one of the known identifiers.
func (o OS) Valid() bool {
	return o <= Linux
}

// String returns the lowercase name of the OS.
func (o OS) String() string {
	switch o {
	case Windows:
		return "windows"
	case MacOS:
		return "macos"
	case Linux:
		return "linux"
	default:
		return "os(" + strconv.Itoa(int(o)) + ")"
	}
}

// Constant returns the keymap constant name (OS_WIN, OS_MAC, OS_LIN).
func (o OS) Constant() string {
	switch o {
	case Windows:
		return "OS_WIN"
	case MacOS:
		return "OS_MAC"
	case Linux:
		return "OS_LIN"
	default:
		return ""
	}
}

// Parse converts a name, keymap constant or number into an OS.
//
// Accepted forms are case-insensitive: "windows", "win", "OS_WIN", "0";
// "macos", "mac", "darwin", "OS_MAC", "1"; "linux", "lin", "OS_LIN", "2".
func Parse(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows", "win", "os_win":
		return Windows, nil
	case "macos", "mac", "darwin", "os_mac":
		return MacOS, nil
	case "linux", "lin", "os_lin":
		return Linux, nil
	}

	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err == nil && OS(n).Valid() {
		return OS(n), nil
	}
	return Windows, fmt.Errorf("%w: %q", ErrUnknownOS, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o OS) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOS, o)
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *OS) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Store is the OS state cell.
type Store struct {
	current OS
}

// NewStore creates a store initialized to def.
func NewStore(def OS) *Store {
	return &Store{current: def}
}

// Get returns the current OS.
func (s *Store) Get() OS {
	return s.current
}

// Set overwrites the current OS.
func (s *Store) Set(o OS) {
	s.current = o
}
