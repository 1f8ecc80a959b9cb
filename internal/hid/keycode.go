package hid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("hid: empty keycode specification")
	ErrUnknownKey       = errors.New("hid: unknown key name")
	ErrUnmatchedBracket = errors.New("hid: unmatched bracket in keycode specification")
	ErrInvalidKeycode   = errors.New("hid: invalid keycode")
)

// Keycode packs a usage page, usage ID and implicit modifiers into the
// 32-bit parameter of a key-press binding:
//
//	bits 24-31  implicit modifiers
//	bits 16-23  usage page
//	bits  0-15  usage ID
//
// A page of zero means the keyboard page.
type Keycode uint32

// NewKeycode builds a keycode from its parts.
func NewKeycode(page, usage uint16, mods Modifier) Keycode {
	return Keycode(uint32(mods)<<24 | uint32(page&0xFF)<<16 | uint32(usage))
}

// Page returns the usage page.
func (k Keycode) Page() uint16 {
	p := uint16(k>>16) & 0xFF
	if p == 0 {
		return PageKeyboard
	}
	return p
}

// Usage returns the usage ID.
func (k Keycode) Usage() uint16 {
	return uint16(k)
}

// Modifiers returns the implicit modifiers.
func (k Keycode) Modifiers() Modifier {
	return Modifier(k >> 24)
}

// WithModifiers returns k with mods added to its implicit modifiers.
func (k Keycode) WithModifiers(mods Modifier) Keycode {
	return k | Keycode(uint32(mods)<<24)
}

// String renders the keycode in keymap notation, e.g. "LC(LEFT)".
func (k Keycode) String() string {
	name := usageName(k.Page(), k.Usage())
	if name == "" {
		name = fmt.Sprintf("0x%X", uint32(k)&0xFFFFFF)
	}

	mods := k.Modifiers()
	wrappers := [...]string{"LC", "LS", "LA", "LG", "RC", "RS", "RA", "RG"}
	for i := len(wrappers) - 1; i >= 0; i-- {
		if mods&(1<<i) != 0 {
			name = wrappers[i] + "(" + name + ")"
		}
	}
	return name
}

// wrapperMods maps modifier function names to their modifier bits.
var wrapperMods = map[string]Modifier{
	"LC": ModLeftCtrl,
	"LS": ModLeftShift,
	"LA": ModLeftAlt,
	"LG": ModLeftGUI,
	"RC": ModRightCtrl,
	"RS": ModRightShift,
	"RA": ModRightAlt,
	"RG": ModRightGUI,
}

// ParseKeycode parses a keycode specification.
//
// Supported formats:
//   - Key names: "A", "LEFT", "F5", "ENTER", "GLOBE", "C_VOL_UP"
//   - Aliases: "RET", "ESC", "BSPC", "LCMD", "FN"
//   - Modifier functions, nestable: "LC(C)", "LG(LS(Z))"
//   - Numbers: "0x70050", "458832"
func ParseKeycode(spec string) (Keycode, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, ErrEmptySpec
	}

	if open := strings.IndexByte(spec, '('); open >= 0 {
		if !strings.HasSuffix(spec, ")") {
			return 0, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
		}
		fn := strings.ToUpper(strings.TrimSpace(spec[:open]))
		mod, ok := wrapperMods[fn]
		if !ok {
			return 0, fmt.Errorf("%w: modifier function %q", ErrUnknownKey, fn)
		}
		inner, err := ParseKeycode(spec[open+1 : len(spec)-1])
		if err != nil {
			return 0, err
		}
		return inner.WithModifiers(mod), nil
	}
	if strings.ContainsRune(spec, ')') {
		return 0, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}

	if len(spec) > 1 && spec[0] >= '0' && spec[0] <= '9' {
		n, err := strconv.ParseUint(spec, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidKeycode, spec)
		}
		return Keycode(n), nil
	}

	return parseName(spec)
}

// parseName resolves a bare key name.
func parseName(name string) (Keycode, error) {
	upper := strings.ToUpper(name)
	if canonical, ok := aliases[upper]; ok {
		upper = canonical
	}

	if usage, ok := keyboardUsages[upper]; ok {
		return NewKeycode(PageKeyboard, usage, 0), nil
	}
	if usage, ok := consumerUsages[upper]; ok {
		return NewKeycode(PageConsumer, usage, 0), nil
	}

	// Single digits are accepted as their number-row keys.
	if len(upper) == 1 && upper[0] >= '0' && upper[0] <= '9' {
		return NewKeycode(PageKeyboard, keyboardUsages["N"+upper], 0), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
