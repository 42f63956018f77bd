package dashboard

import (
	"sync"
	"time"
)

// Refresher calls fn on a fixed interval. Calls never overlap: fn runs on the
// refresher's own goroutine. fn must not call back into the refresher.
type Refresher struct {
	fn func()

	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewRefresher(fn func()) *Refresher {
	return &Refresher{fn: fn}
}

// SetInterval restarts the timer with a new period. A non-positive period turns
// auto-refresh off; setting the current period again is a no-op.
func (r *Refresher) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d == r.interval {
		return
	}
	r.stopLocked()
	r.interval = d
	if d == 0 {
		return
	}

	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(d, r.stop, r.done)
}

func (r *Refresher) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Stop cancels the timer and waits for an in-flight call to return.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
	r.interval = 0
}

func (r *Refresher) stopLocked() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop, r.done = nil, nil
}

func (r *Refresher) loop(d time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.fn()
		}
	}
}
