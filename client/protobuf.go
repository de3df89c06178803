package client

import (
	"encoding/base64"

	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/initia-labs/gaia-sdk-go/codec"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Protobuf decodes base64 encoded protobuf payloads, as returned by the
// node's JSON endpoints.
type Protobuf struct {
	c *Client
}

func (p Protobuf) DeserializeTx(tx string, wantModel bool) (*codec.DecodedTx, error) {
	bz, err := decodeBase64("tx", tx)
	if err != nil {
		return nil, err
	}

	return p.c.encoding.TxDecoder.DecodeTx(bz, wantModel)
}

// UnpackMsg resolves a single message Any.
func (p Protobuf) UnpackMsg(msg *codectypes.Any, wantModel bool) (*codec.Message, error) {
	return p.c.encoding.Resolver.Unpack(msg, wantModel)
}

func (p Protobuf) DeserializeSignDoc(signDoc string, wantModel bool) (*codec.Message, error) {
	bz, err := decodeBase64("sign doc", signDoc)
	if err != nil {
		return nil, err
	}

	return p.c.encoding.TxDecoder.DecodeSignDoc(bz, wantModel)
}

func (p Protobuf) DeserializeTxRaw(txRaw string, wantModel bool) (*codec.Message, error) {
	bz, err := decodeBase64("tx raw", txRaw)
	if err != nil {
		return nil, err
	}

	return p.c.encoding.TxDecoder.DecodeTxRaw(bz, wantModel)
}

func (p Protobuf) DeserializeSigningInfo(signingInfo string, wantModel bool) (*codec.Message, error) {
	bz, err := decodeBase64("signing info", signingInfo)
	if err != nil {
		return nil, err
	}

	return p.c.encoding.TxDecoder.DecodeSigningInfo(bz, wantModel)
}

func (p Protobuf) DeserializePubkey(pubKey *codectypes.Any, wantModel bool) (*codec.PublicKey, error) {
	return p.c.encoding.TxDecoder.DecodePublicKey(pubKey, wantModel)
}

func decodeBase64(what, s string) ([]byte, error) {
	if s == "" {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "%s can not be empty", what)
	}

	bz, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "%s is not base64: %s", what, err)
	}

	return bz, nil
}
