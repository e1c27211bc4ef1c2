//go:build js && wasm

// Command locker-wasm runs the content locker reveal controller in the
// browser. Load it before the widget script so injected nodes are caught.
package main

import (
	"log/slog"
	"os"
	"syscall/js"

	"github.com/modxnet/modxnet-backend/internal/locker"
)

const (
	defaultEntry     = "_yy"
	defaultConfigVar = "PKiWi_Ojz_wYrvyc"
)

// readOptions reads window.LockerOptions = {entry, variable_name}.
func readOptions() widget {
	w := widget{entry: defaultEntry, config: defaultConfigVar}
	opts := js.Global().Get("LockerOptions")
	if !opts.Truthy() {
		return w
	}
	if v := stringProp(opts, "entry"); v != "" {
		w.entry = v
	}
	if v := stringProp(opts, "variable_name"); v != "" {
		w.config = v
	}
	return w
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	w := readOptions()
	ctrl := locker.NewController(newDocument(), w, locker.WithLogger(logger))
	ctrl.Start()

	global := js.Global()

	// Runs synchronously inside the click handler so the widget keeps the
	// user activation it may need to open windows.
	global.Set("showContentLocker", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		platform := ""
		if len(args) > 0 && args[0].Type() == js.TypeString {
			platform = args[0].String()
		}
		ctrl.ShowContentLocker(platform)
		return nil
	}))

	global.Set("lockerState", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		st := ctrl.State()
		return js.ValueOf(map[string]interface{}{
			"ready":       st.Ready,
			"timedOut":    st.TimedOut,
			"polls":       st.Polls,
			"suppressed":  st.Suppressed,
			"requested":   st.Requested,
			"revealed":    st.Revealed,
			"invoked":     st.Invoked,
			"stabilizing": st.Stabilizing,
			"ticks":       st.Ticks,
			"platform":    st.Platform,
		})
	}))

	logger.Info("locker controller started", "entry", w.entry, "config", w.config)
	global.Get("document").Call("dispatchEvent",
		global.Get("CustomEvent").New("lockercontroller:ready"))

	select {}
}
