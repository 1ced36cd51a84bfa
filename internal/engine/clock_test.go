package engine_test

import (
	"sync"
	"time"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func (m MockClock) After(d time.Duration) <-chan time.Time {
	return make(chan time.Time) // never fires
}

// FakeClock is a manually advanced clock. Every call to After is announced on
// Waiting so tests can advance time only once the session is parked.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []fakeWaiter

	Waiting chan time.Duration
}

type fakeWaiter struct {
	deadline time.Time
	ch       chan time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now, Waiting: make(chan time.Duration, 64)}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.waiters = append(c.waiters, fakeWaiter{deadline: c.now.Add(d), ch: ch})
	c.mu.Unlock()
	c.Waiting <- d
	return ch
}

// Advance moves time forward and releases every waiter whose deadline passed.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)

	pending := c.waiters[:0]
	for _, w := range c.waiters {
		if w.deadline.After(c.now) {
			pending = append(pending, w)
			continue
		}
		w.ch <- c.now
	}
	c.waiters = pending
}
