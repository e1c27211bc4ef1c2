package locker

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(doc *fakeDocument, w Widget) (*Controller, *fakeScheduler) {
	sched := &fakeScheduler{}
	return NewController(doc, w, WithScheduler(sched)), sched
}

func TestIsWidget(t *testing.T) {
	tests := []struct {
		name string
		el   *fakeElement
		want bool
	}{
		{"id fragment", newElement("abm-widget", "", ""), true},
		{"long id fragment", newElement("adbluemedia_root", "", ""), true},
		{"class fragment only", newElement("", "overlay abm-frame", ""), true},
		{"high z-index", newElement("", "", "99999"), true},
		{"z-index with suffix", newElement("", "", "20000 !important"), true},
		{"threshold is exclusive", newElement("", "", "10000"), false},
		{"plain node", newElement("header", "nav", "10"), false},
		{"non numeric z-index", newElement("", "", "auto"), false},
		{"negative z-index", newElement("", "", "-20000"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWidget(tt.el))
		})
	}
	assert.False(t, IsWidget(nil))
}

func TestReveal_SuppressedThenShown(t *testing.T) {
	doc := &fakeDocument{}
	ctrl, _ := newTestController(doc, &fakeWidget{entry: true, config: true})
	ctrl.Start()

	node := newElement("abm-widget", "", "99999")
	doc.insert(node)

	assert.Equal(t, "none", node.style["display"])
	assert.Equal(t, "0", node.style["opacity"])
	assert.Equal(t, "hidden", node.style["visibility"])
	assert.Equal(t, "none", node.style["transition"])
	assert.Equal(t, 1, ctrl.State().Suppressed)
	assert.False(t, ctrl.State().Revealed)

	ctrl.ShowContentLocker("android")

	assert.Equal(t, "block", node.style["display"])
	assert.Equal(t, "1", node.style["opacity"])
	assert.Equal(t, "visible", node.style["visibility"])
	assert.Equal(t, "fixed", node.style["position"])
	assert.Equal(t, "0", node.style["top"])
	assert.Equal(t, "100%", node.style["width"])
	assert.Equal(t, "99999", node.style["z-index"])
	assert.Equal(t, "translateZ(0)", node.style["transform"])

	st := ctrl.State()
	assert.True(t, st.Requested)
	assert.True(t, st.Revealed)
	assert.True(t, st.Invoked)
	assert.True(t, st.Stabilizing)
	assert.Zero(t, st.Suppressed)
	assert.Equal(t, "android", st.Platform)
}

func TestInsertions_NonWidgetUntouched(t *testing.T) {
	doc := &fakeDocument{}
	ctrl, _ := newTestController(doc, &fakeWidget{})
	ctrl.Start()

	node := newElement("header", "site-nav", "10")
	doc.insert(node)

	assert.Equal(t, map[string]string{"z-index": "10"}, node.style)
	assert.Zero(t, ctrl.State().Suppressed)
}

func TestNeverRevealsWithoutClick(t *testing.T) {
	doc := &fakeDocument{}
	w := &fakeWidget{entry: true, config: true}
	ctrl, sched := newTestController(doc, w)
	ctrl.Start()

	node := newElement("", "abm", "")
	doc.insert(node)
	sched.Advance(time.Minute)

	assert.Equal(t, "none", node.style["display"])
	assert.Zero(t, w.calls)
	assert.False(t, ctrl.State().Revealed)
}

func TestReadiness_DetectedImmediately(t *testing.T) {
	ctrl, sched := newTestController(&fakeDocument{}, &fakeWidget{entry: true, config: true})
	ctrl.Start()

	st := ctrl.State()
	assert.True(t, st.Ready)
	assert.False(t, st.TimedOut)
	assert.Equal(t, 1, st.Polls)
	assert.Zero(t, sched.pending())
}

func TestReadiness_NeedsEntryAndConfig(t *testing.T) {
	w := &fakeWidget{entry: true}
	ctrl, sched := newTestController(&fakeDocument{}, w)
	ctrl.Start()

	sched.Advance(4 * ReadinessPolicy.Interval)
	assert.False(t, ctrl.State().Ready)
	assert.Equal(t, 5, ctrl.State().Polls)

	w.config = true
	sched.Advance(ReadinessPolicy.Interval)

	st := ctrl.State()
	assert.True(t, st.Ready)
	assert.False(t, st.TimedOut)
	assert.Equal(t, 6, st.Polls)
	assert.Zero(t, sched.pending())
}

func TestReadiness_TimeoutCountsAsReady(t *testing.T) {
	ctrl, sched := newTestController(&fakeDocument{}, &fakeWidget{})
	ctrl.Start()

	sched.Advance(ReadinessPolicy.Ceiling() - 2*ReadinessPolicy.Interval)
	assert.False(t, ctrl.State().Ready)

	sched.Advance(ReadinessPolicy.Interval)
	st := ctrl.State()
	assert.True(t, st.Ready)
	assert.True(t, st.TimedOut)
	assert.Equal(t, ReadinessPolicy.MaxAttempts, st.Polls)
	assert.Zero(t, sched.pending())
}

// probeWidget records how many observers were attached when the first
// readiness check ran.
type probeWidget struct {
	*fakeWidget
	doc     *fakeDocument
	probed  bool
	atProbe int
}

func (p *probeWidget) EntryDefined() bool {
	if !p.probed {
		p.probed = true
		p.atProbe = len(p.doc.observers)
	}
	return p.fakeWidget.EntryDefined()
}

func TestStart_ObserverAttachedBeforePolling(t *testing.T) {
	doc := &fakeDocument{}
	w := &probeWidget{fakeWidget: &fakeWidget{}, doc: doc}
	ctrl, _ := newTestController(doc, w)

	ctrl.Start()
	ctrl.Start()

	assert.True(t, w.probed)
	assert.Equal(t, 1, w.atProbe)
	assert.Len(t, doc.observers, 1)
	assert.Equal(t, 1, ctrl.State().Polls)
}

func TestShow_NotGatedOnReadiness(t *testing.T) {
	w := &fakeWidget{entry: true}
	ctrl, _ := newTestController(&fakeDocument{}, w)
	ctrl.Start()
	require.False(t, ctrl.State().Ready)

	ctrl.ShowContentLocker("ios")

	assert.Equal(t, 1, w.calls)
	assert.True(t, ctrl.State().Revealed)
}

func TestShow_RetriesOnceWhenEntryMissing(t *testing.T) {
	w := &fakeWidget{}
	ctrl, sched := newTestController(&fakeDocument{}, w)

	ctrl.ShowContentLocker("android")
	assert.Zero(t, w.calls)
	assert.False(t, ctrl.State().Revealed)

	w.entry = true
	sched.Advance(RetryDelay)

	assert.Equal(t, 1, w.calls)
	st := ctrl.State()
	assert.True(t, st.Revealed)
	assert.True(t, st.Invoked)
}

func TestShow_RetryGivesUp(t *testing.T) {
	w := &fakeWidget{}
	ctrl, sched := newTestController(&fakeDocument{}, w)

	ctrl.ShowContentLocker("android")
	sched.Advance(time.Second)
	w.entry = true
	sched.Advance(time.Second)

	assert.Zero(t, w.calls)
	assert.False(t, ctrl.State().Revealed)
	assert.Zero(t, sched.pending())
}

func TestShow_InvocationErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	doc := &fakeDocument{}
	w := &fakeWidget{entry: true, config: true, err: errWidgetThrew}
	sched := &fakeScheduler{}
	ctrl := NewController(doc, w,
		WithScheduler(sched),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)

	ctrl.ShowContentLocker("android")
	sched.Advance(time.Second)

	st := ctrl.State()
	assert.True(t, st.Revealed)
	assert.False(t, st.Invoked)
	assert.False(t, st.Stabilizing)
	assert.Equal(t, 1, w.calls, "a throwing entry is not retried")
	assert.Contains(t, buf.String(), "widget invocation failed")
	assert.Contains(t, buf.String(), errWidgetThrew.Error())
}

func TestStabilization_StopsWhenWidgetCloses(t *testing.T) {
	doc := &fakeDocument{}
	locker := newElement("abm-locker", "", "")
	w := &fakeWidget{entry: true, config: true}
	w.onInvoke = func() { doc.insert(locker) }
	ctrl, sched := newTestController(doc, w)
	ctrl.Start()

	ctrl.ShowContentLocker("android")
	assert.Empty(t, locker.style["display"], "nodes inserted after the click are not suppressed")

	sched.Advance(Warmups[0])
	assert.Equal(t, "fixed", locker.style["position"])

	locker.style["position"] = "absolute"
	sched.Advance(StabilizePolicy.Interval - Warmups[0])
	assert.Equal(t, "fixed", locker.style["position"])
	assert.Equal(t, 1, ctrl.State().Ticks)

	doc.removeAll()
	sched.Advance(StabilizePolicy.Interval)

	st := ctrl.State()
	assert.False(t, st.Stabilizing)
	assert.Equal(t, 2, st.Ticks)
}

func TestStabilization_Ceiling(t *testing.T) {
	doc := &fakeDocument{}
	doc.insert(newElement("", "", "50000"))
	ctrl, sched := newTestController(doc, &fakeWidget{entry: true, config: true})

	ctrl.ShowContentLocker("android")
	sched.Advance(StabilizePolicy.Ceiling())

	st := ctrl.State()
	assert.False(t, st.Stabilizing)
	assert.Equal(t, StabilizePolicy.MaxAttempts, st.Ticks)

	sched.Advance(time.Minute)
	assert.Equal(t, StabilizePolicy.MaxAttempts, ctrl.State().Ticks)
	assert.Zero(t, sched.pending())
}

func TestRepeatClick_RestartsLoop(t *testing.T) {
	doc := &fakeDocument{}
	doc.insert(newElement("abm-root", "", ""))
	w := &fakeWidget{entry: true, config: true}
	ctrl, sched := newTestController(doc, w)

	ctrl.ShowContentLocker("android")
	sched.Advance(time.Second)
	assert.Equal(t, 10, ctrl.State().Ticks)

	ctrl.ShowContentLocker("ios")
	assert.Zero(t, ctrl.State().Ticks)

	sched.Advance(StabilizePolicy.Interval)
	assert.Equal(t, 1, ctrl.State().Ticks, "only the new loop ticks")
	assert.Equal(t, 2, w.calls)
	assert.Equal(t, "ios", ctrl.State().Platform)
}

func TestClockScheduler(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sched := NewClockScheduler(clock)

	fired := make(chan struct{})
	sched.AfterFunc(ReadinessPolicy.Interval, func() { close(fired) })

	stopped := sched.AfterFunc(ReadinessPolicy.Interval, func() { t.Error("stopped timer fired") })
	assert.True(t, stopped.Stop())

	clock.Advance(ReadinessPolicy.Interval)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestPolicy(t *testing.T) {
	assert.Equal(t, 5*time.Second, ReadinessPolicy.Ceiling())
	assert.Equal(t, 30*time.Second, StabilizePolicy.Ceiling())

	p := Policy{Interval: time.Second, MaxAttempts: 3}
	assert.False(t, p.Exhausted(2))
	assert.True(t, p.Exhausted(3))
}

func TestStabilization_CustomPolicy(t *testing.T) {
	doc := &fakeDocument{}
	doc.insert(newElement("abm-root", "", ""))
	sched := &fakeScheduler{}
	ctrl := NewController(doc, &fakeWidget{entry: true},
		WithScheduler(sched),
		WithStabilizePolicy(Policy{Interval: time.Second, MaxAttempts: 2}),
	)

	ctrl.ShowContentLocker("android")
	sched.Advance(time.Second)
	assert.True(t, ctrl.State().Stabilizing)

	sched.Advance(time.Second)
	assert.False(t, ctrl.State().Stabilizing)
	assert.Equal(t, 2, ctrl.State().Ticks)
}
