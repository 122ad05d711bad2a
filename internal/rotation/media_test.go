package rotation

import "errors"

// fakeMedia records the commands issued to it.
type fakeMedia struct {
	duration float64
	position float64
	preload  PreloadMode
	source   string
	playErr  error

	plays   int
	pauses  int
	loads   int
	rewinds int
	sources []string
}

func (m *fakeMedia) Duration() float64    { return m.duration }
func (m *fakeMedia) CurrentTime() float64 { return m.position }

func (m *fakeMedia) SetCurrentTime(seconds float64) {
	m.position = seconds
	if seconds == 0 {
		m.rewinds++
	}
}

func (m *fakeMedia) Play() error {
	m.plays++
	return m.playErr
}

func (m *fakeMedia) Pause()                      { m.pauses++ }
func (m *fakeMedia) Load()                       { m.loads++ }
func (m *fakeMedia) SetPreload(mode PreloadMode) { m.preload = mode }

func (m *fakeMedia) SetSource(src string) {
	m.source = src
	m.sources = append(m.sources, src)
}

var errAutoplayBlocked = errors.New("autoplay blocked")

func newFakes(n int) []*fakeMedia {
	out := make([]*fakeMedia, n)
	for i := range out {
		out[i] = &fakeMedia{preload: PreloadMetadata}
	}
	return out
}
