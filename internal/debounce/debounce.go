// Package debounce holds the single pending-edit slot shared by all filter
// controls.
//
// Only the most recently edited column waits for the quiet period. When a
// different column is edited while one is pending, the pending column is
// handed back to the caller to be committed at once, then the new column
// takes the slot. Expiry is signalled by generation numbers so stale timers
// are recognised and ignored.
package debounce

import "time"

// DefaultDelay is the quiet period before a filter edit is committed
const DefaultDelay = 500 * time.Millisecond

// Debouncer is the pending-edit slot. The zero value is not usable; call New.
type Debouncer struct {
	delay    time.Duration
	column   int
	pending  bool
	gen      uint64
	deadline time.Time
}

// New creates an idle Debouncer. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, column: -1}
}

// Delay returns the quiet period
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Touch records an edit of column at now and restarts the slot. If another
// column was pending it is returned as flushed and must be committed
// immediately. gen identifies the timer that must be armed for column.
func (d *Debouncer) Touch(column int, now time.Time) (flushed int, ok bool, gen uint64) {
	flushed = -1
	if d.pending && d.column != column {
		flushed, ok = d.column, true
	}

	d.gen++
	d.column = column
	d.pending = true
	d.deadline = now.Add(d.delay)
	return flushed, ok, d.gen
}

// Expire is called when the timer armed with gen fires. It returns the
// pending column when gen is still current and clears the slot.
func (d *Debouncer) Expire(gen uint64) (column int, ok bool) {
	if !d.pending || gen != d.gen {
		return -1, false
	}
	column = d.column
	d.pending = false
	d.column = -1
	return column, true
}

// Pending returns the pending column and its deadline
func (d *Debouncer) Pending() (column int, deadline time.Time, ok bool) {
	if !d.pending {
		return -1, time.Time{}, false
	}
	return d.column, d.deadline, true
}

// Flush clears the slot and returns the column that was pending, if any
func (d *Debouncer) Flush() (column int, ok bool) {
	if !d.pending {
		return -1, false
	}
	column = d.column
	d.pending = false
	d.column = -1
	d.gen++
	return column, true
}

// Cancel drops the pending edit without reporting it
func (d *Debouncer) Cancel() {
	d.pending = false
	d.column = -1
	d.gen++
}
