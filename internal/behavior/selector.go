package behavior

import (
	"fmt"

	"github.com/dshills/oskey/internal/osstate"
)

// OSSelectorConfig configures an OSSelector instance.
type OSSelectorConfig struct {
	// Name is used in log output.
	Name string

	// OS is written to the store on every press.
	OS osstate.OS

	// FromParam takes the OS from the triggering binding's Param1 instead
	// of OS, so one instance can serve "&os_sel OS_MAC" style bindings.
	FromParam bool
}

// OSSelector writes an OS into the store when pressed.
type OSSelector struct {
	cfg   OSSelectorConfig
	store *osstate.Store
}

// NewOSSelector creates a selector that writes into store.
func NewOSSelector(cfg OSSelectorConfig, store *osstate.Store) *OSSelector {
	return &OSSelector{cfg: cfg, store: store}
}

// Config returns the selector configuration.
func (s *OSSelector) Config() OSSelectorConfig {
	return s.cfg
}

// Pressed implements Behavior.Pressed. The store is overwritten
// unconditionally, even when it already holds the same value.
func (s *OSSelector) Pressed(b Binding, ev Event) (Result, error) {
	target := s.cfg.OS
	if s.cfg.FromParam {
		if b.Param1 > uint32(osstate.Linux) {
			return Opaque, fmt.Errorf("%w: os %d", ErrInvalidParam, b.Param1)
		}
		target = osstate.OS(b.Param1)
	}

	s.store.Set(target)
	logger.Debug("os selected", "behavior", s.cfg.Name, "os", target, "position", ev.Position)
	return Opaque, nil
}

// Released implements Behavior.Released.
func (s *OSSelector) Released(Binding, Event) (Result, error) {
	return Opaque, nil
}
