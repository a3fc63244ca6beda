package redstore

import (
	"fmt"
)

// NotCacheableError reports a value the cacheability policy refused. It is
// raised before any I/O: no remote state was touched, and for batch writes
// no entry from the batch was committed.
type NotCacheableError struct {
	Value any
}

func (e *NotCacheableError) Error() string {
	return fmt.Sprintf("%q is not a cacheable value", display(e.Value))
}

// display renders a rejected value the way it reads in the error message:
// nil as "null", the absence marker as "undefined".
func display(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// ConnectionError reports that a connection could not be acquired or used:
// explicit disconnect, a dead or timed-out link, or pool exhaustion.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("redstore: %s: connection: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StoreError reports a command-level failure from the remote store after a
// connection was successfully used (e.g. a wrong-type operation). Codec
// failures on the store path surface here too, under the "encode"/"decode"
// ops.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("redstore: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("redstore: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
