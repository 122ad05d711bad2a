package rotation

import "math"

// Policy decides how clip sources are prepared around a transition. A
// controller runs exactly one policy for its whole lifetime; the two
// implementations are Lookahead and LazyUnload.
type Policy interface {
	name() string
	// progress runs on every accepted progress signal of the active slot.
	progress(c *Controller, index int)
	// deactivate runs on the slot that just lost the active role.
	deactivate(c *Controller, index int)
	// activate runs on the slot that just became active, before play.
	activate(c *Controller, index int)
}

type lookahead struct {
	threshold float64
}

// Lookahead returns the policy that starts loading the next clip once the
// active clip has less than threshold seconds left. Non-positive thresholds
// fall back to DefaultPreloadThreshold.
func Lookahead(threshold float64) Policy {
	if threshold <= 0 {
		threshold = DefaultPreloadThreshold
	}
	return lookahead{threshold: threshold}
}

func (lookahead) name() string { return "lookahead" }

func (p lookahead) progress(c *Controller, index int) {
	if c.preloaded {
		return
	}
	next := c.nextOf(index)
	// With a single slot the "next" clip is the one playing; loading it would
	// restart playback.
	if next == index {
		return
	}
	current, ok := c.registry.Lookup(index)
	if !ok {
		return
	}
	upcoming, ok := c.registry.Lookup(next)
	if !ok {
		return
	}

	duration := current.Duration()
	if !(duration > 0) || math.IsInf(duration, 0) {
		return
	}
	if duration-current.CurrentTime() >= p.threshold {
		return
	}

	upcoming.SetPreload(PreloadAuto)
	upcoming.Load()
	c.preloaded = true
	c.log.Debug("preloading next slot", "active", index, "next", next)
}

func (lookahead) deactivate(*Controller, int) {}

func (lookahead) activate(*Controller, int) {}

type lazyUnload struct {
	sources []string
}

// LazyUnload returns the policy that keeps only the active clip attached:
// the previous slot's source is dropped when it goes inactive and the new
// slot's source is assigned and loaded when it becomes active. sources is
// indexed by slot.
func LazyUnload(sources []string) Policy {
	cp := make([]string, len(sources))
	copy(cp, sources)
	return lazyUnload{sources: cp}
}

func (lazyUnload) name() string { return "lazy-unload" }

func (lazyUnload) progress(*Controller, int) {}

func (lazyUnload) deactivate(c *Controller, index int) {
	m, ok := c.registry.Lookup(index)
	if !ok {
		return
	}
	m.Pause()
	m.SetSource("")
	m.Load()
	c.log.Debug("unloaded slot", "slot", index)
}

func (p lazyUnload) activate(c *Controller, index int) {
	if index >= len(p.sources) || p.sources[index] == "" {
		return
	}
	m, ok := c.registry.Lookup(index)
	if !ok {
		return
	}
	m.SetSource(p.sources[index])
	m.Load()
}
