package redstore

import "time"

// Hooks are lightweight callbacks for high-signal adapter events.
// Implementations MUST be cheap and non-blocking; the adapter calls them on
// hot paths. Wrap with hooks/async to take them off the caller's goroutine.
type Hooks interface {
	// A value failed the cacheability policy. batch is true when the value
	// was one element of an MSet (the whole batch was rejected).
	PolicyRejected(key string, batch bool)

	// A connection could not be acquired for op (disconnected handle,
	// pool-exhaustion timeout, ctx cancellation).
	AcquireFailed(op string, err error)

	// A remote call failed after a connection was acquired.
	OpError(op, key string, err error)

	// A remote call finished cleanly.
	OpCompleted(op string, elapsed time.Duration)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) PolicyRejected(string, bool)       {}
func (NopHooks) AcquireFailed(string, error)       {}
func (NopHooks) OpError(string, string, error)     {}
func (NopHooks) OpCompleted(string, time.Duration) {}
