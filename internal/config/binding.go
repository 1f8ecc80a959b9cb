package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/hid"
	"github.com/dshills/oskey/internal/osstate"
)

// kindKeyPress etc. are the kinds a binding target can have besides the
// user-declared behavior types.
const (
	kindKeyPress = BuiltinKeyPress
	kindNone     = BuiltinNone
	kindTrans    = BuiltinTrans
)

// target describes what a binding name resolves to, for parameter parsing.
type target struct {
	kind string
	// paramOS is set for os-selectors whose OS comes from the binding.
	paramOS bool
}

// ParseBinding parses keymap notation like "&kp LC(C)" without knowing the
// target behavior. Parameters must be numbers or OS constants.
func ParseBinding(s string) (behavior.Binding, error) {
	return parseBinding(s, nil)
}

// parseBinding parses "&name [p1 [p2]]". Parameters are interpreted
// according to the target's kind when targets is non-nil.
func parseBinding(s string, targets map[string]target) (behavior.Binding, error) {
	fields, err := splitFields(s)
	if err != nil {
		return behavior.Binding{}, err
	}
	if len(fields) == 0 {
		return behavior.Binding{}, fmt.Errorf("%w: empty binding", ErrInvalidBinding)
	}

	ref := fields[0]
	if !strings.HasPrefix(ref, "&") || len(ref) == 1 {
		return behavior.Binding{}, fmt.Errorf("%w: %q must start with &name", ErrInvalidBinding, s)
	}
	b := behavior.Binding{Behavior: ref[1:]}

	params := fields[1:]
	if len(params) > 2 {
		return behavior.Binding{}, fmt.Errorf("%w: %q has more than two parameters", ErrInvalidBinding, s)
	}

	var t target
	if targets != nil {
		var ok bool
		t, ok = targets[b.Behavior]
		if !ok {
			return behavior.Binding{}, fmt.Errorf("%w: %q references unknown behavior %q", ErrInvalidBinding, s, b.Behavior)
		}
	}

	switch {
	case t.kind == kindKeyPress:
		if len(params) != 1 {
			return behavior.Binding{}, fmt.Errorf("%w: %q needs exactly one keycode", ErrInvalidBinding, s)
		}
		code, err := hid.ParseKeycode(params[0])
		if err != nil {
			return behavior.Binding{}, fmt.Errorf("%w: %q: %w", ErrInvalidBinding, s, err)
		}
		b.Param1 = uint32(code)
		return b, nil

	case t.kind == TypeOSSelector && t.paramOS:
		if len(params) != 1 {
			return behavior.Binding{}, fmt.Errorf("%w: %q needs an OS parameter", ErrInvalidBinding, s)
		}
		o, err := osstate.Parse(params[0])
		if err != nil {
			return behavior.Binding{}, fmt.Errorf("%w: %q: %w", ErrInvalidBinding, s, err)
		}
		b.Param1 = uint32(o)
		return b, nil

	case targets != nil && len(params) > 0:
		return behavior.Binding{}, fmt.Errorf("%w: %q: %s takes no parameters", ErrInvalidBinding, s, b.Behavior)
	}

	for i, p := range params {
		n, err := parseParam(p)
		if err != nil {
			return behavior.Binding{}, fmt.Errorf("%w: %q: %w", ErrInvalidBinding, s, err)
		}
		if i == 0 {
			b.Param1 = n
		} else {
			b.Param2 = n
		}
	}
	return b, nil
}

// parseParam accepts numbers in any Go base or OS constants.
func parseParam(p string) (uint32, error) {
	if n, err := strconv.ParseUint(p, 0, 32); err == nil {
		return uint32(n), nil
	}
	if o, err := osstate.Parse(p); err == nil {
		return uint32(o), nil
	}
	return 0, fmt.Errorf("parameter %q is not a number or OS constant", p)
}

// splitFields splits on whitespace outside parentheses, so "LC( C )"
// stays one field.
func splitFields(s string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: %q has unbalanced parentheses", ErrInvalidBinding, s)
			}
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: %q has unbalanced parentheses", ErrInvalidBinding, s)
	}
	flush()
	return fields, nil
}
