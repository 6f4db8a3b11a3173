package debounce

import (
	"testing"
	"time"
)

func TestDebouncer_SingleColumnRestarts(t *testing.T) {
	d := New(500 * time.Millisecond)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_, flushed, gen1 := d.Touch(2, now)
	if flushed {
		t.Fatal("first edit must not flush")
	}
	_, flushed, gen2 := d.Touch(2, now.Add(100*time.Millisecond))
	if flushed {
		t.Fatal("editing the same column must not flush")
	}

	if _, ok := d.Expire(gen1); ok {
		t.Error("stale generation must be ignored")
	}

	col, deadline, ok := d.Pending()
	if !ok || col != 2 {
		t.Fatalf("expected column 2 pending, got %d (%v)", col, ok)
	}
	if want := now.Add(600 * time.Millisecond); !deadline.Equal(want) {
		t.Errorf("expected deadline %v, got %v", want, deadline)
	}

	col, ok = d.Expire(gen2)
	if !ok || col != 2 {
		t.Errorf("expected column 2 to expire, got %d (%v)", col, ok)
	}
	if _, ok := d.Expire(gen2); ok {
		t.Error("slot must fire only once")
	}
}

func TestDebouncer_OtherColumnFlushesPending(t *testing.T) {
	d := New(0)
	if d.Delay() != DefaultDelay {
		t.Errorf("expected default delay, got %v", d.Delay())
	}
	now := time.Now()

	_, _, genA := d.Touch(0, now)
	flushedCol, flushed, genB := d.Touch(3, now)

	if !flushed || flushedCol != 0 {
		t.Fatalf("expected column 0 flushed, got %d (%v)", flushedCol, flushed)
	}
	if _, ok := d.Expire(genA); ok {
		t.Error("column 0 timer must not fire after being flushed")
	}
	if col, ok := d.Expire(genB); !ok || col != 3 {
		t.Errorf("expected column 3 to fire, got %d (%v)", col, ok)
	}
}

func TestDebouncer_FlushAndCancel(t *testing.T) {
	d := New(time.Second)

	if _, ok := d.Flush(); ok {
		t.Error("idle flush must report nothing")
	}

	_, _, gen := d.Touch(1, time.Now())
	if col, ok := d.Flush(); !ok || col != 1 {
		t.Errorf("expected column 1 flushed, got %d (%v)", col, ok)
	}
	if _, ok := d.Expire(gen); ok {
		t.Error("flushed slot must not expire")
	}

	_, _, gen = d.Touch(4, time.Now())
	d.Cancel()
	if _, ok := d.Expire(gen); ok {
		t.Error("cancelled slot must not expire")
	}
	if _, _, ok := d.Pending(); ok {
		t.Error("expected idle slot")
	}
}
