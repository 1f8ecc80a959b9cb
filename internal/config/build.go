package config

import (
	"fmt"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/hid"
	"github.com/dshills/oskey/internal/keymap"
	"github.com/dshills/oskey/internal/osstate"
)

// BuildOptions controls Build.
type BuildOptions struct {
	// Sink receives key reports from the kp behavior. Nil discards them.
	Sink hid.Sink

	// Metrics enables router metrics.
	Metrics bool
}

// Keyboard is a fully wired set of behaviors and keymap.
type Keyboard struct {
	Store  *osstate.Store
	Router *keymap.Router
	Keymap *keymap.Keymap
	Keys   *hid.KeyPress
}

// Build validates f and constructs every behavior it declares.
func Build(f *File, opts BuildOptions) (*Keyboard, error) {
	c, err := compile(f)
	if err != nil {
		return nil, err
	}

	routerCfg := keymap.DefaultConfig()
	if f.MaxDepth > 0 {
		routerCfg = routerCfg.WithMaxDepth(f.MaxDepth)
	}
	if opts.Metrics {
		routerCfg = routerCfg.WithMetrics()
	}

	reg := keymap.NewRegistry()
	router := keymap.NewRouter(reg, routerCfg)
	kb := &Keyboard{
		Store:  osstate.NewStore(c.defaultOS),
		Router: router,
		Keys:   hid.NewKeyPress(opts.Sink),
	}

	builtins := map[string]behavior.Behavior{
		BuiltinKeyPress: kb.Keys,
		BuiltinNone:     behavior.None{},
		BuiltinTrans:    behavior.Trans{},
	}
	for name, b := range builtins {
		if err := reg.Register(name, b); err != nil {
			return nil, err
		}
	}

	for _, cs := range c.specs {
		var b behavior.Behavior
		switch cs.Type {
		case TypeOSKey:
			b = behavior.NewOSKey(behavior.OSKeyConfig{
				Name:     cs.Name,
				Windows:  cs.bindings[0],
				MacOS:    cs.bindings[1],
				Linux:    cs.bindings[2],
				Observer: router.Observer(),
			}, kb.Store, router)
		case TypeHoldFn:
			b = behavior.NewHoldFn(behavior.HoldFnConfig{
				Name: cs.Name,
				Hold: cs.bindings[0],
				Tap:  cs.bindings[1],
			}, router)
		case TypeOSSelector:
			b = behavior.NewOSSelector(behavior.OSSelectorConfig{
				Name:      cs.Name,
				OS:        cs.os,
				FromParam: cs.paramOS,
			}, kb.Store)
		default:
			return nil, fmt.Errorf("config: unhandled behavior type %q", cs.Type)
		}

		if err := reg.Register(cs.Name, b); err != nil {
			return nil, err
		}
	}

	kb.Keymap = keymap.New(router, c.keymap)

	logger.Debug("built keyboard", "default_os", c.defaultOS, "behaviors", reg.Count(), "positions", kb.Keymap.Len())
	return kb, nil
}

// LoadAndBuild loads the file at path and builds it.
func LoadAndBuild(path string, opts BuildOptions) (*Keyboard, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(f, opts)
}
