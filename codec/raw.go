package codec

import "fmt"

// String is a passthrough codec for string values. Encode accepts string,
// []byte, or the absence marker; anything else is an error rather than a
// silent fmt.Sprint. Decode assumes UTF-8 and performs no validation.
type String struct{}

var _ Codec = String{}

func (String) Encode(v any) ([]byte, error) {
	switch t := v.(type) {
	case AbsentValue:
		return Sentinel(), nil
	case string:
		return []byte(t), nil
	case []byte:
		return t, nil
	default:
		return nil, fmt.Errorf("codec: String cannot encode %T", v)
	}
}

func (String) Decode(b []byte) (any, error) {
	if IsSentinel(b) {
		return Absent, nil
	}
	return string(b), nil
}
