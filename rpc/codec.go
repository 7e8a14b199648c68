package rpc

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

type MessageType uint64

const (
	TypeRequest      MessageType = 0
	TypeResponse     MessageType = 1
	TypeNotification MessageType = 2
)

func (t MessageType) String() string {
	switch t {
	case TypeRequest:
		return "request"
	case TypeResponse:
		return "response"
	case TypeNotification:
		return "notification"
	default:
		return fmt.Sprintf("MessageType(%d)", uint64(t))
	}
}

// Message is one msgpack-rpc message:
//
//	request      [0, msgid, method, params]
//	response     [1, msgid, error, result]
//	notification [2, method, params]
type Message struct {
	Type   MessageType
	MsgID  uint64
	Method string
	Params []any
	Error  any
	Result any
}

// Decoder reads msgpack-rpc messages from a stream.
type Decoder struct {
	dec *msgpack.Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: msgpack.NewDecoder(r)}
}

// Decode reads the next message. It returns io.EOF once the stream ends
// cleanly between messages.
func (d *Decoder) Decode() (*Message, error) {
	raw, err := d.DecodeValue()
	if err != nil {
		return nil, err
	}
	fields, ok := AsArray(raw)
	if !ok || len(fields) < 3 {
		return nil, fmt.Errorf("rpc: malformed message %v", raw)
	}
	kind, ok := AsUint(fields[0])
	if !ok {
		return nil, fmt.Errorf("rpc: malformed message type %v", fields[0])
	}

	msg := &Message{Type: MessageType(kind)}
	switch msg.Type {
	case TypeRequest, TypeResponse:
		if len(fields) != 4 {
			return nil, fmt.Errorf("rpc: %s needs 4 fields, got %d", msg.Type, len(fields))
		}
		if msg.MsgID, ok = AsUint(fields[1]); !ok {
			return nil, fmt.Errorf("rpc: malformed msgid %v", fields[1])
		}
		if msg.Type == TypeResponse {
			msg.Error, msg.Result = fields[2], fields[3]
			return msg, nil
		}
		return msg, msg.setCall(fields[2], fields[3])
	case TypeNotification:
		return msg, msg.setCall(fields[1], fields[2])
	default:
		return nil, fmt.Errorf("rpc: unknown %s", msg.Type)
	}
}

func (m *Message) setCall(method, params any) error {
	var ok bool
	if m.Method, ok = AsString(method); !ok {
		return fmt.Errorf("rpc: malformed method name %v", method)
	}
	if params == nil {
		return nil
	}
	if m.Params, ok = AsArray(params); !ok {
		return fmt.Errorf("rpc: %s params are not an array", m.Method)
	}
	return nil
}

// DecodeValue reads one msgpack object into the value forms described in
// the package documentation.
func (d *Decoder) DecodeValue() (any, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case c == msgpcode.Nil:
		return nil, d.dec.DecodeNil()
	case c == msgpcode.False || c == msgpcode.True:
		return d.dec.DecodeBool()
	case c <= msgpcode.PosFixedNumHigh,
		c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		return d.dec.DecodeUint64()
	case c >= msgpcode.NegFixedNumLow,
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		return d.dec.DecodeInt64()
	case c == msgpcode.Float || c == msgpcode.Double:
		return d.dec.DecodeFloat64()
	case msgpcode.IsString(c):
		return d.dec.DecodeString()
	case msgpcode.IsBin(c):
		return d.dec.DecodeBytes()
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return d.decodeArray()
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return d.decodeMap()
	case msgpcode.IsFixedExt(c) || msgpcode.IsExt(c):
		return d.decodeExt()
	default:
		return nil, fmt.Errorf("rpc: unexpected msgpack code 0x%02x", c)
	}
}

func (d *Decoder) decodeArray() (any, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	items := make([]any, n)
	for i := range items {
		if items[i], err = d.DecodeValue(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (d *Decoder) decodeMap() (any, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	m := make(Map, n)
	for range n {
		k, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}
		v, err := d.DecodeValue()
		if err != nil {
			return nil, err
		}
		key, ok := AsString(k)
		if !ok {
			key = fmt.Sprint(k)
		}
		m[key] = v
	}
	return m, nil
}

func (d *Decoder) decodeExt() (any, error) {
	extID, extLen, err := d.dec.DecodeExtHeader()
	if err != nil {
		return nil, err
	}
	data := make([]byte, extLen)
	if err := d.dec.ReadFull(data); err != nil {
		return nil, err
	}
	return Ext{Type: extID, Data: data}, nil
}

// Encoder writes msgpack-rpc messages to a stream.
type Encoder struct {
	enc *msgpack.Encoder
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: msgpack.NewEncoder(w)}
}

func (e *Encoder) EncodeRequest(msgID uint64, method string, params ...any) error {
	return e.enc.Encode([]any{uint64(TypeRequest), msgID, method, nonNil(params)})
}

func (e *Encoder) EncodeResponse(msgID uint64, rpcErr, result any) error {
	return e.enc.Encode([]any{uint64(TypeResponse), msgID, rpcErr, result})
}

func (e *Encoder) EncodeNotification(method string, params ...any) error {
	return e.enc.Encode([]any{uint64(TypeNotification), method, nonNil(params)})
}

func nonNil(params []any) []any {
	if params == nil {
		return []any{}
	}
	return params
}
