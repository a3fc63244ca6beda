package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack stores values using vmihailenco/msgpack/v5. The zero value is
// ready to use.
//
// Msgpack is compact and fast; be mindful of struct tag differences vs JSON.
// Use `msgpack:"fieldName"` tags if you need explicit control. The absence
// sentinel is stored as the raw literal text, never msgpack-encoded, so it
// cannot collide with an encoded string.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Encode(v any) ([]byte, error) {
	if _, ok := v.(AbsentValue); ok {
		return Sentinel(), nil
	}
	return msgpack.Marshal(v)
}

func (Msgpack) Decode(b []byte) (any, error) {
	if IsSentinel(b) {
		return Absent, nil
	}
	var v any
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
