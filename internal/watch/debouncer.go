package watch

import (
	"sort"
	"sync"
	"time"

	"github.com/emirpasic/gods/sets/hashset"
)

// Debouncer gathers changed paths and reports them as one sorted batch once
// they stop changing for window, or at once when limit distinct paths are
// pending. flush always runs without the lock held.
type Debouncer struct {
	window time.Duration
	limit  int
	flush  func([]string)

	mu      sync.Mutex
	pending *hashset.Set
	timer   *time.Timer
	closed  bool
}

func NewDebouncer(window time.Duration, limit int, flush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		limit:   max(limit, 1),
		flush:   flush,
		pending: hashset.New(),
	}
}

// Add records a change to path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.report(d.add(path))
}

func (d *Debouncer) add(path string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.pending.Add(path)
	if d.pending.Size() >= d.limit {
		return d.take()
	}

	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.expire)
	} else {
		d.timer.Reset(d.window)
	}
	return nil
}

func (d *Debouncer) expire() {
	d.mu.Lock()
	batch := d.take()
	d.mu.Unlock()

	d.report(batch)
}

// take empties the pending set. Callers hold mu.
func (d *Debouncer) take() []string {
	if d.timer != nil {
		d.timer.Stop()
	}
	batch := make([]string, 0, d.pending.Size())
	for _, v := range d.pending.Values() {
		batch = append(batch, v.(string))
	}
	d.pending.Clear()
	sort.Strings(batch)
	return batch
}

func (d *Debouncer) report(batch []string) {
	if len(batch) > 0 && d.flush != nil {
		d.flush(batch)
	}
}

// Stop reports whatever is pending and ignores later changes.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	batch := d.take()
	d.mu.Unlock()

	d.report(batch)
}
