// Package codec defines the wire representation of cached values.
//
// A Codec turns an opaque caller value into the []byte stored in the remote
// store and back. Payloads must stay readable by other clients of the same
// keyspace, so codecs apply no private framing: the bytes written under a key
// are exactly the encoded value.
//
// Absence is first-class. The marker Absent stands for "no value" and is
// distinct from nil, the empty string, and zero. Codecs that support it
// encode Absent as the literal text "undefined" and decode that text (and
// empty payloads) back to Absent, so a deliberately stored "no value" and a
// missing value behind a live key read back the same sentinel.
package codec

// Codec encodes/decodes caller values to []byte for remote storage.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte) (any, error)
}

// AbsentValue is the type of the Absent marker.
type AbsentValue struct{}

// Absent represents "no value". Comparable; callers may test
// v == codec.Absent.
var Absent = AbsentValue{}

func (AbsentValue) String() string { return "undefined" }

// sentinel is the wire text for Absent.
const sentinel = "undefined"

// IsSentinel reports whether b is the absence sentinel on the wire.
// Empty payloads count: a store that collapses "no value" to an empty
// string must still decode to Absent, not to "".
func IsSentinel(b []byte) bool {
	return len(b) == 0 || string(b) == sentinel
}

// Sentinel returns the wire form of Absent.
func Sentinel() []byte { return []byte(sentinel) }
