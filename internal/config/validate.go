package config

import (
	"errors"
	"fmt"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/osstate"
)

// compiled is a File with every name, OS and binding resolved.
type compiled struct {
	defaultOS osstate.OS
	specs     []compiledSpec
	keymap    []behavior.Binding
}

type compiledSpec struct {
	BehaviorSpec
	os       osstate.OS
	paramOS  bool
	bindings []behavior.Binding
}

// Validate checks f and returns every problem found, joined and wrapped in
// ErrValidationFailed.
func Validate(f *File) error {
	_, err := compile(f)
	return err
}

func compile(f *File) (*compiled, error) {
	var errs []error
	fail := func(path string, err error, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Err: err})
	}

	c := &compiled{defaultOS: osstate.Windows}
	if f.DefaultOS != "" {
		o, err := osstate.Parse(f.DefaultOS)
		if err != nil {
			fail("default_os", err, "unknown os %q", f.DefaultOS)
		}
		c.defaultOS = o
	}
	if f.MaxDepth < 0 {
		fail("max_depth", nil, "must not be negative")
	}

	targets := map[string]target{
		BuiltinKeyPress: {kind: kindKeyPress},
		BuiltinNone:     {kind: kindNone},
		BuiltinTrans:    {kind: kindTrans},
	}

	// First pass: names and types, so bindings may reference any instance.
	for i, spec := range f.Behaviors {
		path := fmt.Sprintf("behavior[%d]", i)
		cs := compiledSpec{BehaviorSpec: spec}

		switch {
		case spec.Name == "":
			fail(path+".name", nil, "is required")
			continue
		case spec.Name == BuiltinKeyPress || spec.Name == BuiltinNone || spec.Name == BuiltinTrans:
			fail(path+".name", nil, "%q is a built-in behavior", spec.Name)
			continue
		}
		if _, dup := targets[spec.Name]; dup {
			fail(path+".name", nil, "duplicate behavior %q", spec.Name)
			continue
		}

		want, ok := arity(spec.Type)
		if !ok {
			fail(path+".type", nil, "unknown type %q (want %s, %s or %s)", spec.Type, TypeOSKey, TypeHoldFn, TypeOSSelector)
			continue
		}
		if len(spec.Bindings) != want {
			fail(path+".bindings", nil, "%s %q needs %d bindings, got %d", spec.Type, spec.Name, want, len(spec.Bindings))
		}

		if spec.Type == TypeOSSelector {
			if spec.OS == "" {
				cs.paramOS = true
			} else if o, err := osstate.Parse(spec.OS); err != nil {
				fail(path+".os", err, "unknown os %q", spec.OS)
			} else {
				cs.os = o
			}
		} else if spec.OS != "" {
			fail(path+".os", nil, "only %s behaviors take an os", TypeOSSelector)
		}

		targets[spec.Name] = target{kind: spec.Type, paramOS: cs.paramOS}
		c.specs = append(c.specs, cs)
	}

	// Second pass: bindings.
	for i := range c.specs {
		cs := &c.specs[i]
		for j, s := range cs.Bindings {
			b, err := parseBinding(s, targets)
			if err != nil {
				fail(fmt.Sprintf("behavior %q bindings[%d]", cs.Name, j), err, "%v", err)
				continue
			}
			cs.bindings = append(cs.bindings, b)
		}
	}

	if len(f.Keymap.Bindings) == 0 {
		fail("keymap.bindings", nil, "at least one position is required")
	}
	for i, s := range f.Keymap.Bindings {
		b, err := parseBinding(s, targets)
		if err != nil {
			fail(fmt.Sprintf("keymap.bindings[%d]", i), err, "%v", err)
			continue
		}
		c.keymap = append(c.keymap, b)
	}

	if len(errs) == 0 {
		if err := checkCycles(c.specs); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, errors.Join(errs...))
	}
	return c, nil
}

// checkCycles rejects behaviors that reach themselves through bindings.
func checkCycles(specs []compiledSpec) error {
	edges := make(map[string][]string, len(specs))
	for _, cs := range specs {
		for _, b := range cs.bindings {
			edges[cs.Name] = append(edges[cs.Name], b.Behavior)
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(specs))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			cycle := append([]string{}, stack...)
			for i, n := range cycle {
				if n == name {
					cycle = cycle[i:]
					break
				}
			}
			cycle = append(cycle, name)
			return &ValidationError{
				Path:    fmt.Sprintf("behavior %q", name),
				Message: fmt.Sprintf("reference cycle %v", cycle),
				Err:     ErrCycle,
			}
		case done:
			return nil
		}

		state[name] = visiting
		stack = append(stack, name)
		for _, next := range edges[name] {
			if err := visit(next); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, cs := range specs {
		if err := visit(cs.Name); err != nil {
			return err
		}
	}
	return nil
}
