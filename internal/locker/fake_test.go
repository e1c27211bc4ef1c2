package locker

import (
	"errors"
	"sort"
	"time"
)

type fakeElement struct {
	id, class string
	style     map[string]string
}

func newElement(id, class, zIndex string) *fakeElement {
	el := &fakeElement{id: id, class: class, style: map[string]string{}}
	if zIndex != "" {
		el.style["z-index"] = zIndex
	}
	return el
}

func (e *fakeElement) ID() string        { return e.id }
func (e *fakeElement) ClassName() string { return e.class }
func (e *fakeElement) ZIndex() string    { return e.style["z-index"] }

func (e *fakeElement) SetStyle(property, value string) { e.style[property] = value }

type fakeDocument struct {
	elements  []*fakeElement
	observers []func(Element)
}

func (d *fakeDocument) ObserveInsertions(fn func(Element)) {
	d.observers = append(d.observers, fn)
}

func (d *fakeDocument) Candidates() []Element {
	out := make([]Element, 0, len(d.elements))
	for _, el := range d.elements {
		out = append(out, el)
	}
	return out
}

func (d *fakeDocument) insert(el *fakeElement) {
	d.elements = append(d.elements, el)
	for _, fn := range d.observers {
		fn(el)
	}
}

func (d *fakeDocument) removeAll() { d.elements = nil }

type fakeWidget struct {
	entry, config bool
	err           error
	calls         int
	onInvoke      func()
}

func (w *fakeWidget) EntryDefined() bool  { return w.entry }
func (w *fakeWidget) ConfigDefined() bool { return w.config }

func (w *fakeWidget) Invoke() error {
	w.calls++
	if w.onInvoke != nil {
		w.onInvoke()
	}
	return w.err
}

var errWidgetThrew = errors.New("TypeError: cannot read properties of undefined")

// fakeScheduler runs callbacks synchronously, in due order, when Advance
// moves virtual time past them.
type fakeScheduler struct {
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *fakeTask) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.seq++
	t := &fakeTask{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		live := s.tasks[:0]
		for _, t := range s.tasks {
			if !t.stopped {
				live = append(live, t)
			}
		}
		s.tasks = live
		sort.Slice(s.tasks, func(i, j int) bool {
			if s.tasks[i].at != s.tasks[j].at {
				return s.tasks[i].at < s.tasks[j].at
			}
			return s.tasks[i].seq < s.tasks[j].seq
		})
		if len(s.tasks) == 0 || s.tasks[0].at > target {
			break
		}
		next := s.tasks[0]
		s.tasks = s.tasks[1:]
		next.stopped = true
		s.now = next.at
		next.fn()
	}
	s.now = target
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}
