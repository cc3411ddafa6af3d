package course

import (
	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*Module)(nil)
	_ msgpack.CustomDecoder = (*Module)(nil)
)

// EncodeMsgpack stores the module in the same tagged wire form as JSON, so
// persisted drafts survive the Section interface.
func (m *Module) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(m.wire())
}

// DecodeMsgpack rebuilds the section variants from the tagged wire form.
func (m *Module) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w moduleWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	return m.fromWire(w)
}
