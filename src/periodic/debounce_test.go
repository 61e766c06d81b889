package periodic

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDebouncerLastCallWins(t *testing.T) {
	clock := NewFakeClock(epoch)
	d := NewDebouncer(clock, 2*time.Second)
	var got []string

	d.Call(func() { got = append(got, "h") })
	clock.Advance(time.Second)
	d.Call(func() { got = append(got, "he") })
	assert.Equal(t, 1, clock.Pending(), "the superseded timer is stopped")

	clock.Advance(1999 * time.Millisecond)
	assert.Empty(t, got)
	assert.True(t, d.Pending())

	clock.Advance(time.Millisecond)
	assert.Equal(t, []string{"he"}, got)
	assert.False(t, d.Pending())
}

func TestDebouncerSpacedCallsAllRun(t *testing.T) {
	clock := NewFakeClock(epoch)
	d := NewDebouncer(clock, 2*time.Second)
	var count int

	for i := 0; i < 3; i++ {
		d.Call(func() { count++ })
		clock.Advance(2 * time.Second)
	}

	assert.Equal(t, 3, count)
}

func TestDebouncerCancel(t *testing.T) {
	clock := NewFakeClock(epoch)
	d := NewDebouncer(clock, time.Second)
	var count int

	d.Call(func() { count++ })
	d.Cancel()
	clock.Advance(5 * time.Second)

	assert.Zero(t, count)
	assert.False(t, d.Pending())
}

func TestDebouncerRealClock(t *testing.T) {
	var count atomic.Int32
	d := NewDebouncer(nil, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Call(func() { count.Add(1) })
	}

	require.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestFilterDebouncerAppliesOnlyLastQuery(t *testing.T) {
	clock := NewFakeClock(epoch)
	var applied []string
	tbl := newTestTable(t, nil)
	tbl.SetOnChange(func() { applied = append(applied, tbl.Filter()) })
	var dispatched int
	f := NewFilterDebouncer(tbl, clock, DefaultFilterDelay, func(fn func()) {
		dispatched++
		fn()
	})

	f.Apply("h")
	clock.Advance(500 * time.Millisecond)
	f.Apply("He")
	assert.Equal(t, "", tbl.Filter(), "nothing applied during the quiet period")

	clock.Advance(DefaultFilterDelay)

	assert.Equal(t, []string{"he"}, applied)
	assert.Equal(t, 1, dispatched)
	require.Len(t, tbl.Visible(), 1)
	assert.Equal(t, "Helium", tbl.Visible()[0].Name)
}

func TestFilterDebouncerClear(t *testing.T) {
	clock := NewFakeClock(epoch)
	tbl := newTestTable(t, nil)
	tbl.SetFilter("neon")
	f := NewFilterDebouncer(tbl, clock, DefaultFilterDelay, nil)

	f.Apply("carbon")
	f.Clear()
	clock.Advance(DefaultFilterDelay)

	assert.Equal(t, "", tbl.Filter())
	assert.False(t, f.Pending())
	assert.Len(t, tbl.Visible(), tbl.Len())
}

func TestFakeClockFiresInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock(epoch)
	var order []int
	clock.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	clock.AfterFunc(time.Second, func() { order = append(order, 1) })
	stopped := clock.AfterFunc(2*time.Second, func() { order = append(order, 2) })
	require.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	clock.Advance(10 * time.Second)

	assert.Equal(t, []int{1, 3}, order)
	assert.Equal(t, epoch.Add(10*time.Second), clock.Now())
}
