package locker

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Policy bounds a repeated check: at most MaxAttempts runs, Interval apart.
type Policy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Exhausted reports whether attempt is the last one allowed.
func (p Policy) Exhausted(attempt int) bool { return attempt >= p.MaxAttempts }

// Ceiling is the total time the policy can run for.
func (p Policy) Ceiling() time.Duration { return p.Interval * time.Duration(p.MaxAttempts) }

var (
	// ReadinessPolicy polls for the widget globals for up to 5s.
	ReadinessPolicy = Policy{Interval: 50 * time.Millisecond, MaxAttempts: 100}

	// StabilizePolicy re-pins the revealed widget for up to 30s.
	StabilizePolicy = Policy{Interval: 100 * time.Millisecond, MaxAttempts: 300}
)

const RetryDelay = 100 * time.Millisecond

// Warmups are the one-off re-stabilization passes run right after the
// widget is invoked, before the fixed interval settles in.
var Warmups = []time.Duration{
	50 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
}

// ThirdPartyInvocationError wraps a failure thrown by the widget entry
// function. It is logged and never surfaced to the page.
type ThirdPartyInvocationError struct {
	Err error
}

func (e *ThirdPartyInvocationError) Error() string {
	return fmt.Sprintf("widget invocation failed: %v", e.Err)
}

func (e *ThirdPartyInvocationError) Unwrap() error { return e.Err }

// State is a snapshot of the controller.
type State struct {
	Ready       bool   `json:"ready"`
	TimedOut    bool   `json:"timed_out"`
	Polls       int    `json:"polls"`
	Suppressed  int    `json:"suppressed"`
	Requested   bool   `json:"requested"`
	Revealed    bool   `json:"revealed"`
	Invoked     bool   `json:"invoked"`
	Stabilizing bool   `json:"stabilizing"`
	Ticks       int    `json:"ticks"`
	Platform    string `json:"platform,omitempty"`
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithReadinessPolicy(p Policy) Option {
	return func(c *Controller) { c.readiness = p }
}

func WithStabilizePolicy(p Policy) Option {
	return func(c *Controller) { c.stabilize = p }
}

// Controller keeps the widget hidden until the user asks for it, then
// reveals it and holds it in place.
type Controller struct {
	doc    Document
	widget Widget
	sched  Scheduler
	log    *slog.Logger

	readiness Policy
	stabilize Policy

	mu         sync.Mutex
	state      State
	suppressed []Element
	started    bool
	gen        int
	timers     []Timer
}

func NewController(doc Document, widget Widget, opts ...Option) *Controller {
	c := &Controller{
		doc:       doc,
		widget:    widget,
		readiness: ReadinessPolicy,
		stabilize: StabilizePolicy,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = NewClockScheduler(nil)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	c.log = c.log.With("component", "locker")
	return c
}

// Start attaches the insertion observer and begins readiness polling. The
// observer is registered before the first poll so nothing the widget
// injects can show before it is caught. Calling Start twice is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.doc.ObserveInsertions(c.onInserted)
	c.poll()
}

func (c *Controller) poll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Ready {
		return
	}

	c.state.Polls++
	switch {
	case c.widget.EntryDefined() && c.widget.ConfigDefined():
		c.state.Ready = true
		c.log.Debug("widget ready", "polls", c.state.Polls)
	case !c.readiness.Exhausted(c.state.Polls):
		c.sched.AfterFunc(c.readiness.Interval, c.poll)
	default:
		c.state.Ready = true
		c.state.TimedOut = true
		c.log.Warn("widget not detected, continuing without it", "polls", c.state.Polls)
	}
}

func (c *Controller) onInserted(el Element) {
	if !IsWidget(el) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Requested {
		return
	}
	apply(el, hiddenStyle)
	c.suppressed = append(c.suppressed, el)
	c.state.Suppressed = len(c.suppressed)
}

// ShowContentLocker reveals the widget. It is meant to be called from a
// user click only. platform is recorded but not interpreted.
func (c *Controller) ShowContentLocker(platform string) {
	c.mu.Lock()
	c.state.Requested = true
	c.state.Platform = platform
	c.gen++
	gen := c.gen
	c.stopLoopLocked()

	for _, el := range c.suppressed {
		apply(el, stableStyle)
	}
	c.suppressed = nil
	c.state.Suppressed = 0
	c.stabilizeLocked()
	c.mu.Unlock()

	if c.widget.EntryDefined() {
		c.invoke(gen)
		return
	}

	c.log.Info("widget entry not defined yet, retrying", "delay", RetryDelay)
	c.mu.Lock()
	c.timers = append(c.timers, c.sched.AfterFunc(RetryDelay, func() { c.retry(gen) }))
	c.mu.Unlock()
}

func (c *Controller) retry(gen int) {
	if !c.current(gen) {
		return
	}
	if !c.widget.EntryDefined() {
		c.log.Warn("widget entry still not defined, giving up")
		return
	}
	c.invoke(gen)
}

// invoke runs the entry function without holding the lock, since the
// widget may insert nodes synchronously.
func (c *Controller) invoke(gen int) {
	err := c.widget.Invoke()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Revealed = true
	if err != nil {
		c.log.Error("widget invocation failed", "error", &ThirdPartyInvocationError{Err: err})
		return
	}
	c.state.Invoked = true
	if gen != c.gen {
		return
	}
	c.startLoopLocked(gen)
}

func (c *Controller) startLoopLocked(gen int) {
	c.state.Stabilizing = true
	c.state.Ticks = 0

	for _, d := range Warmups {
		c.timers = append(c.timers, c.sched.AfterFunc(d, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if gen == c.gen {
				c.stabilizeLocked()
			}
		}))
	}
	c.timers = append(c.timers, c.sched.AfterFunc(c.stabilize.Interval, func() { c.tick(gen) }))
}

func (c *Controller) tick(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !c.state.Stabilizing {
		return
	}

	c.state.Ticks++
	found := c.stabilizeLocked()
	if found == 0 || c.stabilize.Exhausted(c.state.Ticks) {
		c.state.Stabilizing = false
		c.log.Debug("stabilization stopped", "ticks", c.state.Ticks, "widget_nodes", found)
		return
	}
	c.timers = append(c.timers, c.sched.AfterFunc(c.stabilize.Interval, func() { c.tick(gen) }))
}

// stabilizeLocked pins every widget node in the document and returns how
// many it found.
func (c *Controller) stabilizeLocked() int {
	found := 0
	for _, el := range c.doc.Candidates() {
		if !IsWidget(el) {
			continue
		}
		apply(el, stableStyle)
		found++
	}
	return found
}

func (c *Controller) stopLoopLocked() {
	for _, t := range c.timers {
		t.Stop()
	}
	c.timers = nil
	c.state.Stabilizing = false
}

func (c *Controller) current(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
