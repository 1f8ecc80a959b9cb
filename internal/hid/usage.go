package hid

import (
	"sort"
	"strings"
)

// Usage pages.
const (
	PageKeyboard uint16 = 0x07
	PageConsumer uint16 = 0x0C
)

// Modifier is the HID keyboard modifier byte.
type Modifier uint8

// Modifier bits, in report order.
const (
	ModLeftCtrl Modifier = 1 << iota
	ModLeftShift
	ModLeftAlt
	ModLeftGUI
	ModRightCtrl
	ModRightShift
	ModRightAlt
	ModRightGUI
)

// String returns the modifiers joined by "+", e.g. "LCtrl+LGUI".
func (m Modifier) String() string {
	if m == 0 {
		return ""
	}
	names := [...]string{"LCtrl", "LShift", "LAlt", "LGUI", "RCtrl", "RShift", "RAlt", "RGUI"}
	var parts []string
	for i, name := range names {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "+")
}

// Keyboard page usage IDs for the modifier keys themselves.
const (
	usageLeftCtrl uint16 = 0xE0
	usageRightGUI uint16 = 0xE7
	usageGlobe    uint16 = 0x029D // AC Next Keyboard Layout Select
)

// modifierFor returns the modifier bit for a keyboard modifier usage.
func modifierFor(usage uint16) (Modifier, bool) {
	if usage < usageLeftCtrl || usage > usageRightGUI {
		return 0, false
	}
	return Modifier(1) << (usage - usageLeftCtrl), true
}

// keyboardUsages maps key names to keyboard page usage IDs.
var keyboardUsages = map[string]uint16{
	"A": 0x04, "B": 0x05, "C": 0x06, "D": 0x07, "E": 0x08, "F": 0x09, "G": 0x0A,
	"H": 0x0B, "I": 0x0C, "J": 0x0D, "K": 0x0E, "L": 0x0F, "M": 0x10, "N": 0x11,
	"O": 0x12, "P": 0x13, "Q": 0x14, "R": 0x15, "S": 0x16, "T": 0x17, "U": 0x18,
	"V": 0x19, "W": 0x1A, "X": 0x1B, "Y": 0x1C, "Z": 0x1D,

	"N1": 0x1E, "N2": 0x1F, "N3": 0x20, "N4": 0x21, "N5": 0x22,
	"N6": 0x23, "N7": 0x24, "N8": 0x25, "N9": 0x26, "N0": 0x27,

	"ENTER":     0x28,
	"ESCAPE":    0x29,
	"BACKSPACE": 0x2A,
	"TAB":       0x2B,
	"SPACE":     0x2C,
	"MINUS":     0x2D,
	"EQUAL":     0x2E,
	"LBKT":      0x2F,
	"RBKT":      0x30,
	"BSLH":      0x31,
	"SEMI":      0x33,
	"SQT":       0x34,
	"GRAVE":     0x35,
	"COMMA":     0x36,
	"DOT":       0x37,
	"FSLH":      0x38,
	"CAPS":      0x39,

	"F1": 0x3A, "F2": 0x3B, "F3": 0x3C, "F4": 0x3D, "F5": 0x3E, "F6": 0x3F,
	"F7": 0x40, "F8": 0x41, "F9": 0x42, "F10": 0x43, "F11": 0x44, "F12": 0x45,
	"F13": 0x68, "F14": 0x69, "F15": 0x6A, "F16": 0x6B, "F17": 0x6C, "F18": 0x6D,
	"F19": 0x6E, "F20": 0x6F, "F21": 0x70, "F22": 0x71, "F23": 0x72, "F24": 0x73,

	"PSCRN":  0x46,
	"SLCK":   0x47,
	"PAUSE":  0x48,
	"INSERT": 0x49,
	"HOME":   0x4A,
	"PG_UP":  0x4B,
	"DELETE": 0x4C,
	"END":    0x4D,
	"PG_DN":  0x4E,
	"RIGHT":  0x4F,
	"LEFT":   0x50,
	"DOWN":   0x51,
	"UP":     0x52,

	"K_APP": 0x65,

	"LCTRL":  0xE0,
	"LSHIFT": 0xE1,
	"LALT":   0xE2,
	"LGUI":   0xE3,
	"RCTRL":  0xE4,
	"RSHIFT": 0xE5,
	"RALT":   0xE6,
	"RGUI":   0xE7,
}

// consumerUsages maps key names to consumer page usage IDs.
var consumerUsages = map[string]uint16{
	"GLOBE":        usageGlobe,
	"C_BRI_UP":     0x6F,
	"C_BRI_DN":     0x70,
	"C_NEXT":       0xB5,
	"C_PREV":       0xB6,
	"C_STOP":       0xB7,
	"C_PLAY_PAUSE": 0xCD,
	"C_MUTE":       0xE2,
	"C_VOL_UP":     0xE9,
	"C_VOL_DN":     0xEA,
}

// aliases are alternate spellings accepted by Parse.
var aliases = map[string]string{
	"RET":         "ENTER",
	"RETURN":      "ENTER",
	"ESC":         "ESCAPE",
	"BSPC":        "BACKSPACE",
	"SPC":         "SPACE",
	"DEL":         "DELETE",
	"INS":         "INSERT",
	"PERIOD":      "DOT",
	"SLASH":       "FSLH",
	"BACKSLASH":   "BSLH",
	"SEMICOLON":   "SEMI",
	"APOS":        "SQT",
	"PAGE_UP":     "PG_UP",
	"PAGE_DOWN":   "PG_DN",
	"LEFT_ARROW":  "LEFT",
	"RIGHT_ARROW": "RIGHT",
	"UP_ARROW":    "UP",
	"DOWN_ARROW":  "DOWN",
	"LCMD":        "LGUI",
	"RCMD":        "RGUI",
	"LWIN":        "LGUI",
	"RWIN":        "RGUI",
	"LOPT":        "LALT",
	"ROPT":        "RALT",
	"FN":          "GLOBE",
	"C_VOLUME_UP": "C_VOL_UP",
	"C_VOLUME_DN": "C_VOL_DN",
	"NUMBER_1":    "N1",
	"NUMBER_2":    "N2",
	"NUMBER_3":    "N3",
	"NUMBER_4":    "N4",
	"NUMBER_5":    "N5",
	"NUMBER_6":    "N6",
	"NUMBER_7":    "N7",
	"NUMBER_8":    "N8",
	"NUMBER_9":    "N9",
	"NUMBER_0":    "N0",
}

// Key describes a named key for listings.
type Key struct {
	Name  string
	Page  uint16
	Usage uint16
}

// Keys returns every named key sorted by page then usage.
func Keys() []Key {
	keys := make([]Key, 0, len(keyboardUsages)+len(consumerUsages))
	for name, usage := range keyboardUsages {
		keys = append(keys, Key{Name: name, Page: PageKeyboard, Usage: usage})
	}
	for name, usage := range consumerUsages {
		keys = append(keys, Key{Name: name, Page: PageConsumer, Usage: usage})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Page != keys[j].Page {
			return keys[i].Page < keys[j].Page
		}
		return keys[i].Usage < keys[j].Usage
	})
	return keys
}

// usageName returns the canonical name for a page/usage pair.
func usageName(page, usage uint16) string {
	table := keyboardUsages
	if page == PageConsumer {
		table = consumerUsages
	}
	for name, u := range table {
		if u == usage {
			return name
		}
	}
	return ""
}
