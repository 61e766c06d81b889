package periodic

import (
	"sync"
	"time"
)

// DefaultFilterDelay is the quiet period before a typed filter is applied.
const DefaultFilterDelay = 2 * time.Second

// Debouncer runs a callback once input has been quiet for a delay. Each Call
// cancels the pending run and schedules a new one; a sequence number keeps
// a timer that already fired from running a superseded callback.
//
// All methods are safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	clock Clock
	delay time.Duration
	timer Timer
	seq   uint64
}

// NewDebouncer returns a Debouncer using clock. A nil clock means the real
// one.
func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Call schedules fn, discarding any callback scheduled earlier that has not
// run yet.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	current := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.seq != current {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a callback is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// FilterDebouncer applies filter text to a Table after a quiet period.
// dispatch runs the application on the goroutine that owns the table.
type FilterDebouncer struct {
	table    *Table
	debounce *Debouncer
	dispatch func(func())
}

// NewFilterDebouncer wires table to a debouncer. A nil dispatch runs the
// application on the timer goroutine.
func NewFilterDebouncer(table *Table, clock Clock, delay time.Duration, dispatch func(func())) *FilterDebouncer {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &FilterDebouncer{
		table:    table,
		debounce: NewDebouncer(clock, delay),
		dispatch: dispatch,
	}
}

// Apply schedules query to become the table's filter. Only the last query
// given within the quiet period is applied.
func (f *FilterDebouncer) Apply(query string) {
	f.debounce.Call(func() {
		f.dispatch(func() { f.table.SetFilter(query) })
	})
}

// Clear cancels any pending query and clears the filter immediately.
// It must be called on the goroutine that owns the table.
func (f *FilterDebouncer) Clear() {
	f.debounce.Cancel()
	f.table.SetFilter("")
}

func (f *FilterDebouncer) Pending() bool { return f.debounce.Pending() }
