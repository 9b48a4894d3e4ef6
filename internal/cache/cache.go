// Package cache provides a bounded, TTL-evicting result cache. It is an
// explicit object the caller owns and injects — never a process-wide
// singleton — so concurrent evaluation batches stay composable and
// independently testable.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/san-kum/fuelsim/internal/sim"
)

type entry struct {
	key     string
	result  *sim.Result
	expires time.Time
}

// Bounded is a size- and age-limiting cache of simulation results, keyed by
// a caller-chosen string (typically a hash of the candidate parameters).
// Safe for concurrent use.
type Bounded struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recent
	items    map[string]*list.Element
	now      func() time.Time
}

func New(capacity int, ttl time.Duration) *Bounded {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

func (c *Bounded) Get(key string) (*sim.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}

	e := el.Value.(*entry)
	if c.ttl > 0 && c.now().After(e.expires) {
		c.remove(el)
		return nil, false
	}

	c.order.MoveToFront(el)
	return e.result, true
}

func (c *Bounded) Put(key string, r *sim.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.result = r
		e.expires = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	for c.order.Len() >= c.capacity {
		c.remove(c.order.Back())
	}

	el := c.order.PushFront(&entry{key: key, result: r, expires: c.now().Add(c.ttl)})
	c.items[key] = el
}

func (c *Bounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Bounded) remove(el *list.Element) {
	if el == nil {
		return
	}
	delete(c.items, el.Value.(*entry).key)
	c.order.Remove(el)
}
