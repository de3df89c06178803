package codec

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// TypeKey is the key under which plain projections carry their type tag.
const TypeKey = "type"

// Message is a resolved Any. Exactly one of Model and Plain is set,
// depending on the form that was asked for.
type Message struct {
	// Type is the normalized type URL of the message.
	Type  string
	Model proto.Message
	Plain map[string]any

	codec Codec
}

// MarshalJSON renders the plain projection, computing it from the model
// when needed.
func (m *Message) MarshalJSON() ([]byte, error) {
	if m.Plain != nil || m.Model == nil || m.codec == nil {
		return json.Marshal(m.Plain)
	}

	plain, err := m.codec.ToPlain(m.Model)
	if err != nil {
		return nil, err
	}
	plain[TypeKey] = m.Type

	return json.Marshal(plain)
}

// Resolver turns Any envelopes into concrete messages through a sealed
// Registry and back.
type Resolver struct {
	registry *Registry
}

// NewResolver seals reg and returns a resolver over it.
func NewResolver(reg *Registry) *Resolver {
	reg.Seal()
	return &Resolver{registry: reg}
}

func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Unpack decodes the payload of a according to its type URL. With
// wantModel the typed message is returned, otherwise its plain projection
// carrying the normalized type URL under TypeKey.
func (r *Resolver) Unpack(a *codectypes.Any, wantModel bool) (*Message, error) {
	if a == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "any can not be nil")
	}
	if a.TypeUrl == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "any type url can not be empty")
	}

	typeURL := NormalizeTypeURL(a.TypeUrl)
	c, ok := r.registry.Resolve(typeURL)
	if !ok {
		return nil, errorsmod.Wrap(types.ErrUnsupportedType, typeURL)
	}

	model, err := c.Decode(a.Value)
	if err != nil {
		return nil, err
	}

	msg := &Message{Type: typeURL, codec: c}
	if wantModel {
		msg.Model = model
		return msg, nil
	}

	plain, err := c.ToPlain(model)
	if err != nil {
		return nil, err
	}
	plain[TypeKey] = typeURL
	msg.Plain = plain

	return msg, nil
}

// Pack wraps msg into an Any through its registered codec.
func (r *Resolver) Pack(msg proto.Message) (*codectypes.Any, error) {
	if msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "message can not be nil")
	}

	typeURL := "/" + proto.MessageName(msg)
	c, ok := r.registry.Resolve(typeURL)
	if !ok {
		return nil, errorsmod.Wrap(types.ErrUnsupportedType, NormalizeTypeURL(typeURL))
	}

	bz, err := c.Encode(msg)
	if err != nil {
		return nil, err
	}

	return &codectypes.Any{TypeUrl: typeURL, Value: bz}, nil
}
