package tabular

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
	"rsc.io/ordered"
)

type Marshaler interface {
	Marshal(v any) (data []byte, err error)
}

type Unmarshaler interface {
	Unmarshal(data []byte, v any) error
}

type MarshalUnmarshaler interface {
	Marshaler
	Unmarshaler
}

// Store codecs. Both encode a row as its []any cell slice; msgpack is the
// default, json is readable at the cost of mapping every number to float64
// on the way back.
var (
	JsonMaUn    MarshalUnmarshaler = jsonMaUn{}
	MsgpackMaUn MarshalUnmarshaler = msgpackMaUn{}
)

type jsonMaUn struct{}

func (jsonMaUn) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonMaUn) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackMaUn struct{}

func (msgpackMaUn) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackMaUn) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// rowKey encodes an insertion sequence number so that the store's lexical
// cursor order is insertion order.
func rowKey(id uint64) []byte {
	return ordered.Encode(int64(id))
}

func rowID(key []byte) (uint64, error) {
	var id int64
	if err := ordered.Decode(key, &id); err != nil {
		return 0, err
	}
	return uint64(id), nil
}
