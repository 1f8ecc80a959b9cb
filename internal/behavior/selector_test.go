package behavior_test

import (
	"errors"
	"testing"

	"github.com/dshills/oskey/internal/behavior"
	"github.com/dshills/oskey/internal/osstate"
)

func TestOSSelectorPress(t *testing.T) {
	store := osstate.NewStore(osstate.Windows)
	sel := behavior.NewOSSelector(behavior.OSSelectorConfig{Name: "sel_mac", OS: osstate.MacOS}, store)

	for i := 0; i < 3; i++ {
		if res := press(t, sel, 0); res != behavior.Opaque {
			t.Errorf("expected opaque, got %v", res)
		}
		if store.Get() != osstate.MacOS {
			t.Errorf("press %d: expected macos, got %v", i, store.Get())
		}
	}
}

func TestOSSelectorOverwrites(t *testing.T) {
	store := osstate.NewStore(osstate.Windows)
	mac := behavior.NewOSSelector(behavior.OSSelectorConfig{OS: osstate.MacOS}, store)
	lin := behavior.NewOSSelector(behavior.OSSelectorConfig{OS: osstate.Linux}, store)

	press(t, mac, 0)
	press(t, lin, 1)
	if store.Get() != osstate.Linux {
		t.Errorf("expected linux, got %v", store.Get())
	}
	press(t, mac, 0)
	if store.Get() != osstate.MacOS {
		t.Errorf("expected macos, got %v", store.Get())
	}
}

func TestOSSelectorReleaseIsNoOp(t *testing.T) {
	store := osstate.NewStore(osstate.Linux)
	sel := behavior.NewOSSelector(behavior.OSSelectorConfig{OS: osstate.Windows}, store)

	if res := release(t, sel, 0); res != behavior.Opaque {
		t.Errorf("expected opaque, got %v", res)
	}
	if store.Get() != osstate.Linux {
		t.Errorf("expected release to leave store alone, got %v", store.Get())
	}
}

func TestOSSelectorFromParam(t *testing.T) {
	store := osstate.NewStore(osstate.Windows)
	sel := behavior.NewOSSelector(behavior.OSSelectorConfig{FromParam: true}, store)

	_, err := sel.Pressed(behavior.Binding{Behavior: "os_sel", Param1: uint32(osstate.Linux)}, behavior.Event{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Get() != osstate.Linux {
		t.Errorf("expected linux, got %v", store.Get())
	}

	_, err = sel.Pressed(behavior.Binding{Behavior: "os_sel", Param1: 300}, behavior.Event{})
	if !errors.Is(err, behavior.ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam, got %v", err)
	}
	if store.Get() != osstate.Linux {
		t.Errorf("expected invalid param to leave store alone, got %v", store.Get())
	}
}
