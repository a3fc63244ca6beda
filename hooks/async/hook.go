// Package asynchook wraps a redstore.Hooks so events are delivered off the
// caller's goroutine. Events are enqueued non-blocking; when the queue is
// full they are dropped rather than stalling a cache operation.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{})
//	h := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer h.Close()
package asynchook

import (
	"sync"
	"time"

	"github.com/unkn0wn-root/redstore"
)

type Hooks struct {
	inner redstore.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ redstore.Hooks = (*Hooks)(nil)

func New(inner redstore.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains the queue and stops the workers. Events submitted after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) submit(f func()) {
	defer func() {
		// sending on a closed queue after Close; drop the event
		_ = recover()
	}()
	select {
	case h.q <- f:
	default:
	}
}

func (h *Hooks) PolicyRejected(key string, batch bool) {
	h.submit(func() { h.inner.PolicyRejected(key, batch) })
}

func (h *Hooks) AcquireFailed(op string, err error) {
	h.submit(func() { h.inner.AcquireFailed(op, err) })
}

func (h *Hooks) OpError(op, key string, err error) {
	h.submit(func() { h.inner.OpError(op, key, err) })
}

func (h *Hooks) OpCompleted(op string, elapsed time.Duration) {
	h.submit(func() { h.inner.OpCompleted(op, elapsed) })
}
