package behavior

// HoldFnConfig configures a HoldFn instance.
type HoldFnConfig struct {
	// Name is used in log output.
	Name string

	// Hold stays pressed for as long as the key is held.
	Hold Binding

	// Tap is pressed after Hold and released before it.
	Tap Binding
}

// HoldFn holds one binding while pressing and releasing another, e.g. Globe
// held around Ctrl+Left for macOS window tiling.
//
// Press order is hold then tap; release order is tap then hold. Both
// sub-invocations happen in the same dispatch turn so the resulting reports
// go out together.
type HoldFn struct {
	cfg     HoldFnConfig
	invoker Invoker
}

// NewHoldFn creates a hold-fn behavior invoking through inv.
func NewHoldFn(cfg HoldFnConfig, inv Invoker) *HoldFn {
	return &HoldFn{cfg: cfg, invoker: inv}
}

// Config returns the behavior configuration.
func (h *HoldFn) Config() HoldFnConfig {
	return h.cfg
}

// Pressed implements Behavior.Pressed. A failed hold press aborts before the
// tap is pressed.
func (h *HoldFn) Pressed(_ Binding, ev Event) (Result, error) {
	if res, err := invoke(h.invoker, h.cfg.Hold, ev, true); err != nil {
		logger.Error("failed to press hold binding", "behavior", h.cfg.Name, "binding", h.cfg.Hold, "err", err)
		return res, err
	}

	return invoke(h.invoker, h.cfg.Tap, ev, true)
}

// Released implements Behavior.Released. The hold binding is released even if
// releasing the tap failed; the returned outcome is the tap release's.
func (h *HoldFn) Released(_ Binding, ev Event) (Result, error) {
	res, err := invoke(h.invoker, h.cfg.Tap, ev, false)

	if _, holdErr := invoke(h.invoker, h.cfg.Hold, ev, false); holdErr != nil {
		logger.Error("failed to release hold binding", "behavior", h.cfg.Name, "binding", h.cfg.Hold, "err", holdErr)
	}

	return res, err
}
