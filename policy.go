package redstore

import "github.com/unkn0wn-root/redstore/codec"

// Policy decides whether a value may be stored at all. It is evaluated on
// every Set and independently on every element of every MSet batch, before
// any I/O. Injecting a Policy replaces the default wholesale: an override
// that wants the default behavior plus extra rules must delegate to
// DefaultPolicy itself.
type Policy interface {
	IsCacheable(v any) bool
}

// PolicyFunc adapts a plain predicate to Policy.
type PolicyFunc func(v any) bool

func (f PolicyFunc) IsCacheable(v any) bool { return f(v) }

// DefaultPolicy rejects exactly the values meaning "no value": nil and the
// absence marker. Everything else is cacheable, including the empty string
// and zero.
type DefaultPolicy struct{}

func (DefaultPolicy) IsCacheable(v any) bool {
	if v == nil {
		return false
	}
	_, absent := v.(codec.AbsentValue)
	return !absent
}
