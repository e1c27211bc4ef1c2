//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/modxnet/modxnet-backend/internal/locker"
)

const elementNode = 1

type element struct {
	v js.Value
}

func (e element) ID() string {
	return stringProp(e.v, "id")
}

// ClassName falls back to the attribute since SVG elements expose an
// SVGAnimatedString instead of a string.
func (e element) ClassName() string {
	if cn := e.v.Get("className"); cn.Type() == js.TypeString {
		return cn.String()
	}
	attr := e.v.Call("getAttribute", "class")
	if attr.Type() != js.TypeString {
		return ""
	}
	return attr.String()
}

func (e element) ZIndex() string {
	style := e.v.Get("style")
	if !style.Truthy() {
		return ""
	}
	return stringProp(style, "zIndex")
}

func (e element) SetStyle(property, value string) {
	style := e.v.Get("style")
	if !style.Truthy() {
		return
	}
	style.Call("setProperty", property, value, "important")
}

func stringProp(v js.Value, name string) string {
	p := v.Get(name)
	if p.Type() != js.TypeString {
		return ""
	}
	return p.String()
}

type document struct {
	doc js.Value
	// observers are kept alive for the life of the page.
	callbacks []js.Func
}

func newDocument() *document {
	return &document{doc: js.Global().Get("document")}
}

func (d *document) ObserveInsertions(fn func(locker.Element)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		mutations := args[0]
		for i := 0; i < mutations.Length(); i++ {
			added := mutations.Index(i).Get("addedNodes")
			for j := 0; j < added.Length(); j++ {
				node := added.Index(j)
				if node.Get("nodeType").Int() == elementNode {
					fn(element{v: node})
				}
			}
		}
		return nil
	})
	d.callbacks = append(d.callbacks, cb)

	target := d.doc.Get("body")
	if !target.Truthy() {
		target = d.doc.Get("documentElement")
	}
	observer := js.Global().Get("MutationObserver").New(cb)
	observer.Call("observe", target, map[string]interface{}{
		"childList": true,
		"subtree":   true,
	})
}

func (d *document) Candidates() []locker.Element {
	list := d.doc.Call("querySelectorAll", locker.WidgetSelector)
	out := make([]locker.Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		out = append(out, element{v: list.Index(i)})
	}
	return out
}

// widget reads the third-party globals by name.
type widget struct {
	entry  string
	config string
}

func (w widget) EntryDefined() bool {
	return js.Global().Get(w.entry).Type() == js.TypeFunction
}

func (w widget) ConfigDefined() bool {
	return js.Global().Get(w.config).Truthy()
}

func (w widget) Invoke() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	js.Global().Get(w.entry).Invoke()
	return nil
}
