package config_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/config"
	"github.com/dshills/oskey/internal/hid"
	"github.com/dshills/oskey/internal/keymap"
	"github.com/dshills/oskey/internal/osstate"
)

func TestMain(m *testing.M) {
	quiet := log.New(io.Discard)
	behavior.SetLogger(quiet)
	keymap.SetLogger(quiet)
	config.SetLogger(quiet)
	os.Exit(m.Run())
}

const sampleTOML = `
default_os = "windows"

[[behavior]]
name = "copy"
type = "os-key"
bindings = ["&kp LC(C)", "&kp LG(C)", "&kp LC(C)"]

[[behavior]]
name = "tile_left"
type = "hold-fn"
bindings = ["&kp GLOBE", "&kp LC(LEFT)"]

[[behavior]]
name = "os_sel"
type = "os-selector"

[[behavior]]
name = "sel_lin"
type = "os-selector"
os = "linux"

[keymap]
bindings = ["&copy", "&tile_left", "&os_sel OS_MAC", "&sel_lin", "&kp A", "&none", "&trans"]
`

const sampleYAML = `
default_os: macos
behavior:
  - name: copy
    type: os-key
    bindings: ["&kp LC(C)", "&kp LG(C)", "&kp LC(C)"]
keymap:
  bindings: ["&copy"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", sampleTOML)

	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DefaultOS != "windows" {
		t.Errorf("expected default_os windows, got %q", f.DefaultOS)
	}
	if len(f.Behaviors) != 4 {
		t.Fatalf("expected 4 behaviors, got %d", len(f.Behaviors))
	}
	if f.Behaviors[1].Type != config.TypeHoldFn {
		t.Errorf("expected hold-fn, got %q", f.Behaviors[1].Type)
	}
	if len(f.Keymap.Bindings) != 7 {
		t.Errorf("expected 7 positions, got %d", len(f.Keymap.Bindings))
	}
	if err := config.Validate(f); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)

	f, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DefaultOS != "macos" {
		t.Errorf("expected macos, got %q", f.DefaultOS)
	}
	if len(f.Behaviors) != 1 || f.Behaviors[0].Name != "copy" {
		t.Errorf("unexpected behaviors %+v", f.Behaviors)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	if _, err := config.Load(writeFile(t, "config.json", "{}")); !errors.Is(err, config.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	_, err := config.Load(writeFile(t, "bad.toml", "default_os = \n"))
	var pe *config.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Line != 1 {
		t.Errorf("expected line 1, got %d", pe.Line)
	}

	_, err = config.Load(writeFile(t, "unknown.toml", "colour = \"red\"\n"))
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError for unknown key, got %v", err)
	}

	_, err = config.Load(writeFile(t, "unknown.yaml", "colour: red\n"))
	if !errors.As(err, &pe) {
		t.Errorf("expected ParseError for unknown yaml key, got %v", err)
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	f, err := config.Decode(strings.NewReader(""), config.FormatYAML, "<empty>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := config.Validate(f); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("expected empty config to fail validation, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvDefaultOS: "linux",
		config.EnvMaxDepth:  "8",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	f := &config.File{DefaultOS: "windows"}
	if err := config.ApplyEnv(f, lookup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.DefaultOS != "linux" || f.MaxDepth != 8 {
		t.Errorf("expected overrides applied, got %+v", f)
	}

	env[config.EnvMaxDepth] = "deep"
	if err := config.ApplyEnv(f, lookup); err == nil {
		t.Error("expected error for invalid max depth")
	}

	empty := &config.File{DefaultOS: "macos"}
	config.ApplyEnv(empty, func(string) (string, bool) { return "", true })
	if empty.DefaultOS != "macos" {
		t.Errorf("expected empty env value ignored, got %q", empty.DefaultOS)
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	t.Setenv(config.EnvDefaultOS, "mac")
	path := writeFile(t, "config.toml", sampleTOML)

	kb, err := config.LoadAndBuild(path, config.BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kb.Store.Get() != osstate.MacOS {
		t.Errorf("expected env default macos, got %v", kb.Store.Get())
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		in   string
		want behavior.Binding
	}{
		{"&none", behavior.Binding{Behavior: "none"}},
		{"&os_sel OS_MAC", behavior.Binding{Behavior: "os_sel", Param1: 1}},
		{"&mt 0x02 4", behavior.Binding{Behavior: "mt", Param1: 2, Param2: 4}},
		{"  &x   7  ", behavior.Binding{Behavior: "x", Param1: 7}},
	}
	for _, tt := range tests {
		got, err := config.ParseBinding(tt.in)
		if err != nil {
			t.Errorf("ParseBinding(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBinding(%q): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}

	for _, bad := range []string{"", "kp A", "&", "&a 1 2 3", "&a nope", "&a (1"} {
		if _, err := config.ParseBinding(bad); !errors.Is(err, config.ErrInvalidBinding) {
			t.Errorf("ParseBinding(%q): expected ErrInvalidBinding, got %v", bad, err)
		}
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		file config.File
		want string
	}{
		{
			name: "unknown default os",
			file: config.File{DefaultOS: "beos", Keymap: config.KeymapSpec{Bindings: []string{"&none"}}},
			want: "default_os",
		},
		{
			name: "empty keymap",
			file: config.File{},
			want: "keymap.bindings",
		},
		{
			name: "unknown type",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "x", Type: "tap-dance"}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&none"}},
			},
			want: "unknown type",
		},
		{
			name: "wrong arity",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "x", Type: config.TypeOSKey, Bindings: []string{"&kp A"}}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&x"}},
			},
			want: "needs 3 bindings",
		},
		{
			name: "duplicate",
			file: config.File{
				Behaviors: []config.BehaviorSpec{
					{Name: "x", Type: config.TypeOSSelector, OS: "mac"},
					{Name: "x", Type: config.TypeOSSelector, OS: "win"},
				},
				Keymap: config.KeymapSpec{Bindings: []string{"&x"}},
			},
			want: "duplicate",
		},
		{
			name: "builtin name",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "kp", Type: config.TypeOSSelector, OS: "mac"}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&none"}},
			},
			want: "built-in",
		},
		{
			name: "unknown reference",
			file: config.File{Keymap: config.KeymapSpec{Bindings: []string{"&ghost"}}},
			want: "unknown behavior",
		},
		{
			name: "bad keycode",
			file: config.File{Keymap: config.KeymapSpec{Bindings: []string{"&kp NOPE"}}},
			want: "unknown key name",
		},
		{
			name: "selector needs param",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "sel", Type: config.TypeOSSelector}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&sel"}},
			},
			want: "needs an OS parameter",
		},
		{
			name: "fixed selector rejects param",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "sel", Type: config.TypeOSSelector, OS: "linux"}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&sel OS_MAC"}},
			},
			want: "takes no parameters",
		},
		{
			name: "os on non-selector",
			file: config.File{
				Behaviors: []config.BehaviorSpec{{Name: "h", Type: config.TypeHoldFn, OS: "mac", Bindings: []string{"&kp A", "&kp B"}}},
				Keymap:    config.KeymapSpec{Bindings: []string{"&h"}},
			},
			want: "only os-selector",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Validate(&tt.file)
			if !errors.Is(err, config.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateCycle(t *testing.T) {
	f := &config.File{
		Behaviors: []config.BehaviorSpec{
			{Name: "a", Type: config.TypeHoldFn, Bindings: []string{"&kp GLOBE", "&b"}},
			{Name: "b", Type: config.TypeOSKey, Bindings: []string{"&kp A", "&a", "&kp A"}},
		},
		Keymap: config.KeymapSpec{Bindings: []string{"&a"}},
	}

	err := config.Validate(f)
	if !errors.Is(err, config.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	if !strings.Contains(err.Error(), "[a b a]") {
		t.Errorf("expected cycle path in error, got %v", err)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	f := &config.File{
		DefaultOS: "plan9",
		Keymap:    config.KeymapSpec{Bindings: []string{"&ghost", "&kp NOPE"}},
	}
	err := config.Validate(f)
	for _, want := range []string{"default_os", "keymap.bindings[0]", "keymap.bindings[1]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestBuildAndDispatch(t *testing.T) {
	f, err := config.Decode(strings.NewReader(sampleTOML), config.FormatTOML, "<test>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := &hid.Recorder{}
	kb, err := config.Build(f, config.BuildOptions{Sink: rec, Metrics: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kb.Keymap.Len() != 7 {
		t.Fatalf("expected 7 positions, got %d", kb.Keymap.Len())
	}

	step := func(pos uint32, pressed bool) {
		t.Helper()
		var err error
		if pressed {
			_, err = kb.Keymap.Press(pos)
		} else {
			_, err = kb.Keymap.Release(pos)
		}
		if err != nil {
			t.Fatalf("pos %d pressed=%v: %v", pos, pressed, err)
		}
	}

	// Copy under windows, switch to mac while held.
	step(0, true)
	step(2, true)
	step(2, false)
	step(0, false)
	if kb.Store.Get() != osstate.MacOS {
		t.Errorf("expected macos, got %v", kb.Store.Get())
	}

	// Copy under mac.
	step(0, true)
	step(0, false)

	// Fixed selector.
	step(3, true)
	step(3, false)
	if kb.Store.Get() != osstate.Linux {
		t.Errorf("expected linux, got %v", kb.Store.Get())
	}

	// Hold-fn chord.
	step(1, true)
	step(1, false)

	want := []string{
		"down C [LCtrl]", "up C",
		"down C [LGUI]", "up C",
		"down GLOBE", "down LEFT [LCtrl]", "up LEFT", "up GLOBE",
	}
	got := rec.Strings()
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		t.Errorf("expected reports %v, got %v", want, got)
	}

	if res, _ := kb.Keymap.Press(6); res != behavior.Transparent {
		t.Errorf("expected &trans to be transparent, got %v", res)
	}
	if kb.Router.Metrics() == nil {
		t.Error("expected metrics enabled")
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	if _, err := config.Build(&config.File{}, config.BuildOptions{}); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
}

func TestBuildMaxDepth(t *testing.T) {
	f := &config.File{
		MaxDepth: 1,
		Behaviors: []config.BehaviorSpec{
			{Name: "h", Type: config.TypeHoldFn, Bindings: []string{"&kp GLOBE", "&kp A"}},
		},
		Keymap: config.KeymapSpec{Bindings: []string{"&h"}},
	}
	kb, err := config.Build(f, config.BuildOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := kb.Keymap.Press(0); !errors.Is(err, keymap.ErrMaxDepth) {
		t.Errorf("expected ErrMaxDepth with max_depth 1, got %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	p := config.DefaultPath()
	if filepath.Base(p) != "config.toml" || filepath.Base(filepath.Dir(p)) != "oskey" {
		t.Errorf("unexpected default path %q", p)
	}
}

func TestWatcher(t *testing.T) {
	path := writeFile(t, "config.toml", sampleTOML)

	w, err := config.NewWatcher(path, config.WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan string, 4)
	go w.Run(ctx, func(p string) { changed <- p })

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sampleTOML+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != w.Path() {
			t.Errorf("expected change for %s, got %s", w.Path(), got)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for change")
	}
}

func TestExampleConfig(t *testing.T) {
	kb, err := config.LoadAndBuild(filepath.Join("..", "..", "docs", "example", "config.toml"), config.BuildOptions{})
	if err != nil {
		t.Fatalf("example config: %v", err)
	}
	if kb.Keymap.Len() != 9 {
		t.Errorf("expected 9 positions, got %d", kb.Keymap.Len())
	}
}
