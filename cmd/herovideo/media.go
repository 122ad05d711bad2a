//go:build js && wasm

package main

import (
	"errors"
	"log/slog"
	"math"
	"syscall/js"

	"lounge-site/internal/rotation"
)

var errNoPlay = errors.New("video element has no play method")

// videoElement adapts an HTMLVideoElement to rotation.Media.
type videoElement struct {
	el    js.Value
	index int
	log   *slog.Logger
	// onRejected swallows the play() promise rejection (autoplay policy).
	onRejected js.Func
}

func newVideoElement(el js.Value, index int, log *slog.Logger) *videoElement {
	v := &videoElement{el: el, index: index, log: log}
	v.onRejected = js.FuncOf(func(this js.Value, args []js.Value) any {
		reason := "unknown"
		if len(args) > 0 && args[0].Truthy() {
			reason = args[0].Call("toString").String()
		}
		v.log.Debug("play rejected", "slot", v.index, "reason", reason)
		return nil
	})
	return v
}

func (v *videoElement) Duration() float64 {
	d := v.el.Get("duration").Float()
	if math.IsNaN(d) {
		return 0
	}
	return d
}

func (v *videoElement) CurrentTime() float64 {
	return v.el.Get("currentTime").Float()
}

func (v *videoElement) SetCurrentTime(seconds float64) {
	v.el.Set("currentTime", seconds)
}

// Play starts playback. The browser answers asynchronously; a rejection is
// logged and otherwise ignored.
func (v *videoElement) Play() error {
	play := v.el.Get("play")
	if play.Type() != js.TypeFunction {
		return errNoPlay
	}
	p := v.el.Call("play")
	if p.Type() == js.TypeObject && p.Get("catch").Type() == js.TypeFunction {
		p.Call("catch", v.onRejected)
	}
	return nil
}

func (v *videoElement) Pause() {
	v.el.Call("pause")
}

func (v *videoElement) Load() {
	v.el.Call("load")
}

func (v *videoElement) SetPreload(mode rotation.PreloadMode) {
	v.el.Set("preload", string(mode))
}

// SetSource assigns src; "" removes the attribute so the element releases
// its buffered data on the next Load.
func (v *videoElement) SetSource(src string) {
	if src == "" {
		v.el.Call("removeAttribute", "src")
		return
	}
	v.el.Set("src", src)
}

func (v *videoElement) release() {
	v.onRejected.Release()
}
