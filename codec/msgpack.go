package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack encodes/decodes bodies as MessagePack.
type Msgpack struct{}

func (c *Msgpack) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes integers as int64 and floats as float64 when the target
// is untyped, so reducers see the same shapes regardless of wire width.
func (c *Msgpack) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}

func (c *Msgpack) ContentType() string { return ContentTypeMsgpack }

func (c *Msgpack) Name() string { return NameMsgpack }
