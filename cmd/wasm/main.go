//go:build js && wasm

package main

import (
	"log/slog"
	"syscall/js"

	"github.com/lysyi3m/notice-filter/app/dom"
	"github.com/lysyi3m/notice-filter/app/notice"
)

func main() {
	window := js.Global()
	document := window.Get("document")

	if document.Get("readyState").String() == "loading" {
		document.Call("addEventListener", "DOMContentLoaded", js.FuncOf(func(js.Value, []js.Value) any {
			start(window)
			return nil
		}))
	} else {
		start(window)
	}

	// Keep the runtime alive for the change listeners.
	select {}
}

func start(window js.Value) {
	controls, err := dom.Bind(window)
	if err != nil {
		slog.Error("Failed to bind page controls", "error", err)
		return
	}

	ctrl, err := notice.NewController(controls)
	if err != nil {
		slog.Error("Failed to create filter controller", "error", err)
		return
	}
	ctrl.Init()

	slog.Info("Notice filters ready", "items", len(controls.Items), "visible", ctrl.VisibleCount())
}
