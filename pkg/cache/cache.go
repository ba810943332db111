package cache

import (
	"sync"
	"time"
)

// Timed is a cache that invalidates elements on a timer basis and holds at
// most a fixed number of entries, evicting the oldest entry when full. It is
// safe for concurrent use; handlers share one instance per process.
type Timed struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	cache    map[string]element
}

// element holds a timestamped value to save.
type element struct {
	value    []byte
	creation time.Time
}

// NewTimed creates a new Timed cache where elements will be invalidated after
// a time in cache corresponding to TTL, holding at most capacity entries.
func NewTimed(ttl time.Duration, capacity int) *Timed {
	return &Timed{
		ttl:      ttl,
		capacity: capacity,
		cache:    make(map[string]element),
	}
}

// Set assigns a value to a key.
func (c *Timed) Set(key string, val []byte) {
	c.set(key, val, time.Now())
}

// set performs Set's work with the wall clock factored out.
func (c *Timed) set(key string, val []byte, t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; !exists && len(c.cache) >= c.capacity {
		c.evictOldest()
	}
	c.cache[key] = element{
		value:    val,
		creation: t,
	}
}

// evictOldest removes the entry with the earliest creation time. The caller
// must hold mu.
func (c *Timed) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for k, el := range c.cache {
		if first || el.creation.Before(oldest) {
			oldestKey, oldest = k, el.creation
			first = false
		}
	}
	if !first {
		delete(c.cache, oldestKey)
	}
}

// Get retrieves a value for a key. The value may not exist or have expired, in
// which case ok will be false. An expired value is never returned, even when
// nothing fresher has replaced it.
func (c *Timed) Get(key string) (value []byte, ok bool) {
	return c.get(key, time.Now())
}

// get is like set in that the time is factored out
func (c *Timed) get(key string, t time.Time) (value []byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// check if the element is in memory
	el, ok := c.cache[key]
	if !ok {
		return nil, false
	}

	// in memory elements might still be invalid
	if elapsed := t.Sub(el.creation); elapsed > c.ttl {
		delete(c.cache, key)
		return nil, false
	}

	return el.value, true
}
