package codec

import (
	"bytes"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// Codec encodes, decodes and projects one message shape.
type Codec interface {
	// Decode parses the binary wire form of the message.
	Decode(bz []byte) (proto.Message, error)
	// Encode returns the canonical binary wire form of the message.
	Encode(msg proto.Message) ([]byte, error)
	// ToPlain projects the message onto a plain structured value.
	ToPlain(msg proto.Message) (map[string]any, error)
}

// JSONMarshaler renders a message as proto3 JSON with nested Any values
// resolved. *codec.ProtoCodec from the SDK satisfies it.
type JSONMarshaler interface {
	MarshalJSON(o proto.Message) ([]byte, error)
}

// messageCodec is a Codec for the gogoproto message type PT.
type messageCodec[T any, PT interface {
	*T
	proto.Message
}] struct {
	json JSONMarshaler
}

// NewMessageCodec returns the Codec of the gogoproto message type *T.
//
//	c := NewMessageCodec[banktypes.MsgSend](protoCodec)
func NewMessageCodec[T any, PT interface {
	*T
	proto.Message
}](json JSONMarshaler) Codec {
	return messageCodec[T, PT]{json: json}
}

func (c messageCodec[T, PT]) Decode(bz []byte) (proto.Message, error) {
	msg := PT(new(T))
	if err := proto.Unmarshal(bz, msg); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode %s: %s", proto.MessageName(msg), err)
	}

	return msg, nil
}

func (c messageCodec[T, PT]) Encode(msg proto.Message) ([]byte, error) {
	m, err := c.cast(msg)
	if err != nil {
		return nil, err
	}

	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode %s: %s", proto.MessageName(m), err)
	}

	return bz, nil
}

func (c messageCodec[T, PT]) ToPlain(msg proto.Message) (map[string]any, error) {
	m, err := c.cast(msg)
	if err != nil {
		return nil, err
	}

	return toPlain(c.json, m)
}

func (c messageCodec[T, PT]) cast(msg proto.Message) (PT, error) {
	m, ok := msg.(PT)
	if !ok || m == nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "expected %T, got %T", PT(nil), msg)
	}

	return m, nil
}

// toPlain marshals msg to proto3 JSON and decodes it into a generic map.
// Numbers are kept as json.Number so that no precision is lost.
func toPlain(jm JSONMarshaler, msg proto.Message) (map[string]any, error) {
	if jm == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "no json marshaler configured")
	}

	bz, err := jm.MarshalJSON(msg)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to project %s: %s", proto.MessageName(msg), err)
	}

	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to project %s: %s", proto.MessageName(msg), err)
	}

	return out, nil
}
