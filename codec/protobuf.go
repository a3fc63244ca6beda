package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Protobuf stores values as serialized protobuf messages. Every value in
// the namespace must be the same concrete message type; New constructs an
// empty instance for Decode (e.g. func() proto.Message { return &pb.User{} }).
//
// The absence marker is not representable in protobuf and is rejected at
// Encode; use a policy that forbids it, or a different codec.
type Protobuf struct {
	New func() proto.Message
}

var _ Codec = Protobuf{}

func NewProtobuf(ctor func() proto.Message) Protobuf {
	return Protobuf{New: ctor}
}

func (c Protobuf) Encode(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("codec: Protobuf cannot encode %T", v)
	}
	return proto.Marshal(m)
}

func (c Protobuf) Decode(b []byte) (any, error) {
	m := c.New()
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, err
	}
	return m, nil
}
