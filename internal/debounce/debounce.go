package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a search term is applied
const DefaultDelay = 300 * time.Millisecond

// Debouncer delivers the latest pushed value once input has been quiet for
// the configured delay. Each Push cancels and restarts the pending timer.
type Debouncer struct {
	delay time.Duration
	fn    func(string)

	// deliver serialises fn calls so Flush never returns while a timer
	// delivery is still in flight
	deliver sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	armed   bool
	// gen identifies the latest Push; a timer from an earlier Push that
	// fires late must not deliver
	gen uint64
}

// New returns a Debouncer calling fn on the timer goroutine
func New(delay time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Push records v and restarts the quiet period
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush delivers a pending value immediately on the caller's goroutine
func (d *Debouncer) Flush() {
	d.deliver.Lock()
	defer d.deliver.Unlock()

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	v, ok := d.take()
	d.mu.Unlock()

	if ok {
		d.fn(v)
	}
}

// Stop drops any pending value
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.armed = false
}

func (d *Debouncer) fire(gen uint64) {
	d.deliver.Lock()
	defer d.deliver.Unlock()

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	v, ok := d.take()
	d.mu.Unlock()

	if ok {
		d.fn(v)
	}
}

// take must be called with mu held
func (d *Debouncer) take() (string, bool) {
	if !d.armed {
		return "", false
	}
	d.armed = false
	return d.pending, true
}
