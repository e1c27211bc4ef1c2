package locker

import (
	"strconv"
	"strings"
)

// ZIndexThreshold is the inline z-index above which an inserted node is
// treated as widget content regardless of its id or class.
const ZIndexThreshold = 10000

// WidgetSelector matches every element that could belong to the widget.
// Document implementations backed by a real DOM pass it to querySelectorAll.
const WidgetSelector = `[id*="abm"], [id*="adbluemedia"], [class*="abm"], [class*="adbluemedia"], [style*="z-index"]`

var widgetFragments = []string{"abm", "adbluemedia"}

// Element is the slice of a DOM element the controller touches.
type Element interface {
	ID() string
	ClassName() string
	// ZIndex returns the inline style z-index, or "" when unset.
	ZIndex() string
	// SetStyle sets an inline style property with !important priority.
	SetStyle(property, value string)
}

// Document gives the controller access to the page.
type Document interface {
	// ObserveInsertions calls fn for every element added anywhere under the
	// body from now on. It must be registered before returning.
	ObserveInsertions(fn func(Element))
	// Candidates returns elements currently attached that match
	// WidgetSelector. The controller filters them with IsWidget.
	Candidates() []Element
}

// Widget is the third-party locker script as seen from the page globals.
type Widget interface {
	// EntryDefined reports whether the invocation function exists.
	EntryDefined() bool
	// ConfigDefined reports whether the global config object exists.
	ConfigDefined() bool
	// Invoke calls the entry function. A throw is returned as an error.
	Invoke() error
}

// IsWidget reports whether el belongs to the third-party widget: its id or
// class contains a known fragment, or its inline z-index exceeds
// ZIndexThreshold.
func IsWidget(el Element) bool {
	if el == nil {
		return false
	}
	id, class := el.ID(), el.ClassName()
	for _, frag := range widgetFragments {
		if strings.Contains(id, frag) || strings.Contains(class, frag) {
			return true
		}
	}
	return zIndexOf(el) > ZIndexThreshold
}

// zIndexOf parses the leading integer of the inline z-index, the way
// browsers read "99999 !important" or "  20000".
func zIndexOf(el Element) int {
	raw := strings.TrimSpace(el.ZIndex())
	end := 0
	for end < len(raw) && (raw[end] >= '0' && raw[end] <= '9' || end == 0 && raw[end] == '-') {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0
	}
	return n
}

type styleProp struct{ name, value string }

var hiddenStyle = []styleProp{
	{"display", "none"},
	{"opacity", "0"},
	{"visibility", "hidden"},
	{"transition", "none"},
	{"animation", "none"},
}

// stableStyle pins the widget to the viewport so it cannot drift or animate.
var stableStyle = []styleProp{
	{"display", "block"},
	{"opacity", "1"},
	{"visibility", "visible"},
	{"position", "fixed"},
	{"top", "0"},
	{"left", "0"},
	{"right", "0"},
	{"bottom", "0"},
	{"width", "100%"},
	{"height", "100%"},
	{"z-index", "99999"},
	{"transform", "translateZ(0)"},
	{"backface-visibility", "hidden"},
	{"overflow", "auto"},
	{"transition", "none"},
	{"animation", "none"},
	{"margin", "0"},
	{"padding", "0"},
	{"border", "0"},
}

func apply(el Element, props []styleProp) {
	for _, p := range props {
		el.SetStyle(p.name, p.value)
	}
}
