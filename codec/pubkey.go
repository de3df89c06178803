package codec

import (
	"encoding/base64"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	"github.com/initia-labs/gaia-sdk-go/crypto/ethsecp256k1"
	"github.com/initia-labs/gaia-sdk-go/types"
)

type pubKeyType struct {
	size int
	new  func() cryptotypes.PubKey
}

// pubKeyTypes is the closed set of public key shapes DecodePublicKey accepts.
var pubKeyTypes = map[string]pubKeyType{
	"cosmos.crypto.ed25519.PubKey": {
		size: ed25519.PubKeySize,
		new:  func() cryptotypes.PubKey { return &ed25519.PubKey{} },
	},
	"cosmos.crypto.secp256k1.PubKey": {
		size: secp256k1.PubKeySize,
		new:  func() cryptotypes.PubKey { return &secp256k1.PubKey{} },
	},
	NormalizeTypeURL(ethsecp256k1.PubKeyTypeURL): {
		size: ethsecp256k1.PubKeySize,
		new:  func() cryptotypes.PubKey { return &ethsecp256k1.PubKey{} },
	},
}

// PublicKey is a decoded public key.
type PublicKey struct {
	// Type is the normalized type URL of the key.
	Type  string
	Model cryptotypes.PubKey
	// Plain is {"type": <type url>, "key": <base64 key bytes>}.
	Plain map[string]any
}

// DecodePublicKey decodes a public key Any of one of the supported shapes
// and checks the key length.
func DecodePublicKey(a *codectypes.Any, wantModel bool) (*PublicKey, error) {
	if a == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "public key can not be nil")
	}

	typeURL := NormalizeTypeURL(a.TypeUrl)
	kt, ok := pubKeyTypes[typeURL]
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrUnsupportedType, "public key %s", typeURL)
	}

	pk := kt.new()
	if err := proto.Unmarshal(a.Value, pk); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode %s: %s", typeURL, err)
	}

	key := pk.Bytes()
	if len(key) != kt.size {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid %s length, expected %d, got %d", typeURL, kt.size, len(key))
	}

	out := &PublicKey{Type: typeURL}
	if wantModel {
		out.Model = pk
		return out, nil
	}

	out.Plain = map[string]any{
		TypeKey: typeURL,
		"key":   base64.StdEncoding.EncodeToString(key),
	}

	return out, nil
}
