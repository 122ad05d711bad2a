package rotation

import "errors"

// DefaultPreloadThreshold is how many seconds before the active clip ends the
// lookahead policy starts loading the next clip.
const DefaultPreloadThreshold = 2.0

// PreloadMode mirrors the HTML media "preload" attribute.
type PreloadMode string

const (
	PreloadMetadata PreloadMode = "metadata"
	PreloadAuto     PreloadMode = "auto"
)

// Media is the command surface of one playable resource. Handles are owned by
// the render layer; the controller only issues commands through them.
type Media interface {
	// Duration returns the clip length in seconds, or 0 while unknown.
	Duration() float64
	CurrentTime() float64
	SetCurrentTime(seconds float64)
	// Play starts playback. A non-nil error means the runtime refused it
	// (e.g. autoplay policy).
	Play() error
	Pause()
	Load()
	SetPreload(mode PreloadMode)
	// SetSource assigns the media source; "" detaches it.
	SetSource(src string)
}

// Slot binds a media handle to its fixed position in the sequence.
type Slot struct {
	Index int
	Media Media
}

// ErrNoSlots is returned when a controller is built for an empty sequence.
var ErrNoSlots = errors.New("rotation needs at least one slot")
