// Package rotation drives the hero section's background videos: a fixed
// sequence of slots played one after another, cycling forever.
//
// The render layer owns the media elements. It registers each one with the
// Controller as it mounts and forwards the elements' progress and ended
// events. The controller keeps the single piece of state, the active index,
// and only honors events coming from the active slot, so late or duplicate
// events from slots that already lost the active role are inert.
//
// A Controller is not safe for concurrent use. It is meant to be called from
// one event loop (the browser's, in cmd/herovideo).
package rotation

import (
	"log/slog"
)

// ActiveChangeFunc is told about every transition, including the N=1
// self-loop where prev == next.
type ActiveChangeFunc func(prev, next int)

// Controller is the rotation state machine.
type Controller struct {
	size      int
	active    int
	preloaded bool
	registry  *Registry
	policy    Policy
	log       *slog.Logger
	onChange  ActiveChangeFunc
}

// NewController returns a controller for size slots starting at slot 0.
// A nil policy selects Lookahead(DefaultPreloadThreshold); a nil logger
// discards output.
func NewController(size int, policy Policy, log *slog.Logger) (*Controller, error) {
	if size < 1 {
		return nil, ErrNoSlots
	}
	if policy == nil {
		policy = Lookahead(DefaultPreloadThreshold)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		size:     size,
		registry: NewRegistry(size),
		policy:   policy,
		log:      log.With("component", "rotation", "policy", policy.name()),
	}, nil
}

// Size returns the number of slots in the sequence.
func (c *Controller) Size() int {
	return c.size
}

// Active returns the index of the slot currently designated for playback.
func (c *Controller) Active() int {
	return c.active
}

// OnActiveChange sets the listener told about transitions. Passing nil
// removes it.
func (c *Controller) OnActiveChange(fn ActiveChangeFunc) {
	c.onChange = fn
}

// Register records the media handle for a slot; see Registry.Register.
func (c *Controller) Register(index int, m Media) bool {
	ok := c.registry.Register(index, m)
	if !ok {
		c.log.Debug("register ignored", "slot", index)
	}
	return ok
}

// Lookup returns the media handle registered for a slot.
func (c *Controller) Lookup(index int) (Media, bool) {
	return c.registry.Lookup(index)
}

// Start prepares and plays the active slot. The render layer calls it once
// the slots are mounted.
func (c *Controller) Start() {
	c.policy.activate(c, c.active)
	c.playActive()
}

// OnTimeUpdate handles a playback progress signal from slot index.
func (c *Controller) OnTimeUpdate(index int) {
	if index != c.active {
		return
	}
	c.policy.progress(c, index)
}

// OnEnded handles the completion signal from slot index and advances the
// rotation to the following slot.
func (c *Controller) OnEnded(index int) {
	if index != c.active {
		return
	}

	prev := c.active
	next := c.nextOf(index)
	c.active = next
	c.preloaded = false

	if prev != next {
		c.policy.deactivate(c, prev)
	}
	c.policy.activate(c, next)
	c.playActive()

	if c.onChange != nil {
		c.onChange(prev, next)
	}
}

// Close tears the controller down when the hosting view goes away. Handles
// are dropped and the listener removed; later events are still accepted but
// have nothing to drive.
func (c *Controller) Close() {
	c.registry.Reset()
	c.onChange = nil
}

func (c *Controller) nextOf(index int) int {
	return (index + 1) % c.size
}

// playActive rewinds and plays the active slot. A refused play is dropped on
// purpose: no retry, the rotation stays advanced and the next ended signal
// keeps it moving.
func (c *Controller) playActive() {
	m, ok := c.registry.Lookup(c.active)
	if !ok {
		return
	}
	m.SetCurrentTime(0)
	if err := m.Play(); err != nil {
		c.log.Debug("play rejected", "slot", c.active, "error", err)
	}
}
