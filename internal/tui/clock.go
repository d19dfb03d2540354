package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quill/pkg/clock"
)

const (
	timerPending int32 = iota
	timerFired
	timerStopped
)

// timerMsg carries an expired callback onto the event loop.
type timerMsg struct {
	timer *dispatchTimer
}

// dispatchClock is a clock.Clock whose callbacks run inside Update instead
// of on the timer goroutine.
type dispatchClock struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func newDispatchClock() *dispatchClock {
	return &dispatchClock{}
}

// attach routes expired timers to p.
func (c *dispatchClock) attach(send func(tea.Msg)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = send
}

func (c *dispatchClock) Now() time.Time {
	return time.Now()
}

func (c *dispatchClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &dispatchTimer{f: f}
	t.timer = time.AfterFunc(d, func() {
		c.mu.Lock()
		send := c.send
		c.mu.Unlock()
		if send != nil {
			send(timerMsg{timer: t})
		}
	})
	return t
}

type dispatchTimer struct {
	timer *time.Timer
	f     func()
	state atomic.Int32
}

func (t *dispatchTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerPending, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}

// run fires the callback unless the timer was stopped after its message
// was queued.
func (t *dispatchTimer) run() {
	if t.state.CompareAndSwap(timerPending, timerFired) {
		t.f()
	}
}

var _ clock.Clock = (*dispatchClock)(nil)
