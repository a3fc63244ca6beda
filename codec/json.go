package codec

import "encoding/json"

// JSON stores values as their JSON encoding. The zero value is ready to use.
//
// Decode is tolerant of foreign payloads: bytes that are not valid JSON are
// assumed to have been written natively by another client of the keyspace
// and are returned as their raw string form instead of an error. Numbers
// decode to float64 and objects to map[string]any, per encoding/json.
type JSON struct{}

var _ Codec = JSON{}

func (JSON) Encode(v any) ([]byte, error) {
	if _, ok := v.(AbsentValue); ok {
		return Sentinel(), nil
	}
	return json.Marshal(v)
}

func (JSON) Decode(b []byte) (any, error) {
	if IsSentinel(b) {
		return Absent, nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		// foreign write; hand back the raw text
		return string(b), nil
	}
	return v, nil
}
