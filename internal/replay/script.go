// Package replay drives a configured keyboard from a plain-text event
// script and records what the host would have seen.
//
// A script has one step per line:
//
//	# switch to macOS, then copy
//	tap 2
//	press 0
//	release 0
//
// Blank lines and text after '#' are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Action is what a step does to a key position.
type Action uint8

const (
	ActionPress Action = iota
	ActionRelease
	// ActionTap is a press immediately followed by a release.
	ActionTap
)

// String returns the script keyword for the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionTap:
		return "tap"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

var actions = map[string]Action{
	"press":   ActionPress,
	"down":    ActionPress,
	"release": ActionRelease,
	"up":      ActionRelease,
	"tap":     ActionTap,
}

// Step is one line of a script.
type Step struct {
	Line     int
	Action   Action
	Position uint32
}

// String renders the step in script form.
func (s Step) String() string {
	return fmt.Sprintf("%s %d", s.Action, s.Position)
}

// Script is a parsed event script.
type Script struct {
	Name  string
	Steps []Step
}

// Parse reads a script from r. name is used in error messages.
func Parse(r io.Reader, name string) (*Script, error) {
	s := &Script{Name: name}
	sc := bufio.NewScanner(r)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		if len(fields) != 2 {
			return nil, &ScriptError{Name: name, Line: line, Message: fmt.Sprintf("expected \"<action> <position>\", got %q", strings.TrimSpace(text))}
		}
		action, ok := actions[strings.ToLower(fields[0])]
		if !ok {
			return nil, &ScriptError{Name: name, Line: line, Message: fmt.Sprintf("unknown action %q", fields[0])}
		}
		pos, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, &ScriptError{Name: name, Line: line, Message: fmt.Sprintf("invalid position %q", fields[1])}
		}

		s.Steps = append(s.Steps, Step{Line: line, Action: action, Position: uint32(pos)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScript, name)
	}
	return s, nil
}

// ParseFile parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}
