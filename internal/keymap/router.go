package keymap

import (
	"fmt"

	"github.com/dshills/oskey/internal/behavior"
)

// Router invokes bindings by looking up their behavior in a Registry.
// It implements behavior.Invoker.
type Router struct {
	registry *Registry
	config   Config
	metrics  *Metrics

	// depth is the current nesting level within one dispatch turn.
	depth int
}

// NewRouter creates a router over reg.
func NewRouter(reg *Registry, config Config) *Router {
	r := &Router{
		registry: reg,
		config:   config,
	}
	if config.EnableMetrics {
		r.metrics = NewMetrics()
	}
	return r
}

// Registry returns the behavior registry.
func (r *Router) Registry() *Registry {
	return r.registry
}

// Metrics returns the metrics collector, or nil if disabled.
func (r *Router) Metrics() *Metrics {
	return r.metrics
}

// Observer returns an observer that records drops into the router's
// metrics and logs them. It is safe to use with metrics disabled.
func (r *Router) Observer() behavior.Observer {
	return behavior.ObserverFunc(func(name string, ev behavior.Event, reason error) {
		logger.Debug("event dropped", "behavior", name, "position", ev.Position, "reason", reason)
		if r.metrics != nil {
			r.metrics.RecordDrop(name, reason)
		}
	})
}

// Invoke implements behavior.Invoker.
func (r *Router) Invoke(b behavior.Binding, ev behavior.Event, pressed bool) (behavior.Result, error) {
	target := r.registry.Get(b.Behavior)
	if target == nil {
		return behavior.Opaque, fmt.Errorf("%w: %s", ErrUnknownBehavior, b.Behavior)
	}

	if r.config.MaxDepth > 0 && r.depth >= r.config.MaxDepth {
		logger.Error("binding nesting too deep", "binding", b, "position", ev.Position, "depth", r.depth)
		return behavior.Opaque, fmt.Errorf("%w: %s at depth %d", ErrMaxDepth, b.Behavior, r.depth)
	}

	r.depth++
	var (
		res behavior.Result
		err error
	)
	if pressed {
		res, err = target.Pressed(b, ev)
	} else {
		res, err = target.Released(b, ev)
	}
	r.depth--

	if r.metrics != nil {
		r.metrics.RecordInvoke(b.Behavior, pressed, err)
	}
	if err != nil {
		logger.Debug("binding failed", "binding", b, "pressed", pressed, "position", ev.Position, "err", err)
	}
	return res, err
}
