package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestTimed(t *testing.T) {
	c := NewTimed(5*time.Minute, 10)

	tstart := time.Now()

	c.set("key", []byte("value"), tstart)

	_, ok := c.get("key", tstart.Add(time.Minute))
	if !ok {
		t.Errorf("failed to get key that should not be expired")
	}

	_, ok = c.get("key", tstart.Add(10*time.Minute))
	if ok {
		t.Errorf("succeeded in getting expired key")
	}

	_, ok = c.get("key", tstart.Add(time.Minute))
	if ok {
		t.Errorf("succeeded in getting key that was previously evicted")
	}
}

func TestTimedCapacity(t *testing.T) {
	c := NewTimed(time.Hour, 3)

	tstart := time.Now()
	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("key%d", i)
		c.set(key, []byte("value"), tstart.Add(time.Duration(i)*time.Second))
	}

	// key0 was the oldest and should have been evicted to admit key3.
	if _, ok := c.get("key0", tstart.Add(time.Minute)); ok {
		t.Errorf("oldest key survived eviction")
	}
	for i := 1; i < 4; i++ {
		key := fmt.Sprintf("key%d", i)
		if _, ok := c.get(key, tstart.Add(time.Minute)); !ok {
			t.Errorf("lost %s that should still be cached", key)
		}
	}
}

func TestTimedOverwriteDoesNotEvict(t *testing.T) {
	c := NewTimed(time.Hour, 2)

	tstart := time.Now()
	c.set("a", []byte("1"), tstart)
	c.set("b", []byte("2"), tstart.Add(time.Second))
	c.set("a", []byte("3"), tstart.Add(2*time.Second))

	got, ok := c.get("b", tstart.Add(time.Minute))
	if !ok {
		t.Fatalf("overwriting a live key evicted its neighbor")
	}
	if string(got) != "2" {
		t.Errorf("got %q, wanted %q", got, "2")
	}
}
