//go:build js && wasm

// Command herovideo runs the hero background rotation in the browser. It
// binds every video[data-hero-slot] element on the page to a
// rotation.Controller and keeps running for the lifetime of the page.
package main

import (
	"log/slog"
	"strconv"
	"syscall/js"

	"lounge-site/internal/rotation"
)

const activeClass = "is-active"

// consoleWriter sends log lines to the browser console.
type consoleWriter struct {
	console js.Value
}

func (w consoleWriter) Write(p []byte) (int, error) {
	w.console.Call("debug", string(p))
	return len(p), nil
}

// binding is one slot's event listeners.
type binding struct {
	el      js.Value
	onTime  js.Func
	onEnded js.Func
}

func (b binding) unbind() {
	b.el.Call("removeEventListener", "timeupdate", b.onTime)
	b.el.Call("removeEventListener", "ended", b.onEnded)
	b.onTime.Release()
	b.onEnded.Release()
}

func newLogger(doc js.Value) *slog.Logger {
	out := consoleWriter{console: js.Global().Get("console")}
	level := slog.LevelInfo
	if doc.Get("documentElement").Call("hasAttribute", "data-hero-debug").Bool() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func main() {
	doc := js.Global().Get("document")
	log := newLogger(doc)

	nodes := doc.Call("querySelectorAll", "video[data-hero-slot]")
	n := nodes.Get("length").Int()
	elements := make(map[int]js.Value, n)
	for i := 0; i < n; i++ {
		el := nodes.Index(i)
		idx, err := strconv.Atoi(el.Get("dataset").Get("heroSlot").String())
		if err != nil {
			log.Warn("bad slot index", "error", err)
			continue
		}
		elements[idx] = el
	}

	policy := buildPolicy(doc, elements, n)
	ctrl, err := rotation.NewController(n, policy, log)
	if err != nil {
		log.Info("hero rotation disabled", "error", err)
		return
	}

	var bindings []binding
	videos := make(map[int]*videoElement, len(elements))
	for idx, el := range elements {
		v := newVideoElement(el, idx, log)
		if !ctrl.Register(idx, v) {
			v.release()
			continue
		}
		videos[idx] = v

		slot := idx
		onTime := js.FuncOf(func(this js.Value, args []js.Value) any {
			ctrl.OnTimeUpdate(slot)
			return nil
		})
		onEnded := js.FuncOf(func(this js.Value, args []js.Value) any {
			ctrl.OnEnded(slot)
			return nil
		})
		b := binding{el: el, onTime: onTime, onEnded: onEnded}
		el.Call("addEventListener", "timeupdate", b.onTime)
		el.Call("addEventListener", "ended", b.onEnded)
		bindings = append(bindings, b)
	}

	ctrl.OnActiveChange(func(prev, next int) {
		for idx, v := range videos {
			if idx == next {
				v.el.Get("classList").Call("add", activeClass)
				continue
			}
			v.el.Get("classList").Call("remove", activeClass)
			if idx == prev {
				v.Pause()
			}
		}
	})

	var onHide js.Func
	onHide = js.FuncOf(func(this js.Value, args []js.Value) any {
		for _, b := range bindings {
			b.unbind()
		}
		for _, v := range videos {
			v.Pause()
			v.release()
		}
		ctrl.Close()
		onHide.Release()
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", onHide, map[string]any{"once": true})

	log.Info("hero rotation started", "slots", n, "registered", len(videos))
	ctrl.Start()

	select {}
}

// buildPolicy reads data-hero-policy from the slots' container. Lazy-unload
// takes its sources from each slot's data-src.
func buildPolicy(doc js.Value, elements map[int]js.Value, n int) rotation.Policy {
	container := doc.Call("querySelector", "[data-hero-policy]")
	name := ""
	if container.Truthy() {
		name = container.Get("dataset").Get("heroPolicy").String()
	}
	if name != "lazy-unload" {
		return rotation.Lookahead(rotation.DefaultPreloadThreshold)
	}
	sources := make([]string, n)
	for idx, el := range elements {
		if idx < 0 || idx >= n {
			continue
		}
		if src := el.Get("dataset").Get("src"); src.Type() == js.TypeString {
			sources[idx] = src.String()
		}
	}
	return rotation.LazyUnload(sources)
}
