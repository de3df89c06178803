package codec

import (
	"errors"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// DecodedTxBody is a tx body whose messages have been resolved.
type DecodedTxBody struct {
	Messages                    []*Message
	Memo                        string
	TimeoutHeight               uint64
	ExtensionOptions            []*codectypes.Any
	NonCriticalExtensionOptions []*codectypes.Any
}

// DecodedTx is a decoded transaction. AuthInfo is always set; AuthInfoPlain
// only when the plain form was asked for.
type DecodedTx struct {
	Body          DecodedTxBody
	AuthInfo      *txtypes.AuthInfo
	AuthInfoPlain map[string]any
	Signatures    [][]byte
}

// TxDecoder decodes transaction envelopes and the fixed protocol types
// around them. It holds no mutable state.
type TxDecoder struct {
	resolver *Resolver
	json     JSONMarshaler

	signDoc     Codec
	txRaw       Codec
	signingInfo Codec
}

func NewTxDecoder(resolver *Resolver, json JSONMarshaler) *TxDecoder {
	return &TxDecoder{
		resolver:    resolver,
		json:        json,
		signDoc:     NewMessageCodec[txtypes.SignDoc](json),
		txRaw:       NewMessageCodec[txtypes.TxRaw](json),
		signingInfo: NewMessageCodec[slashingtypes.ValidatorSigningInfo](json),
	}
}

func (d *TxDecoder) Resolver() *Resolver {
	return d.resolver
}

// DecodeTx decodes a serialized Tx and resolves every body message in
// order. A single unresolvable message fails the whole decode.
func (d *TxDecoder) DecodeTx(txBytes []byte, wantModel bool) (*DecodedTx, error) {
	if len(txBytes) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx bytes can not be empty")
	}

	var tx txtypes.Tx
	if err := proto.Unmarshal(txBytes, &tx); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode tx: %s", err)
	}
	if tx.Body == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx body is missing")
	}

	msgs := make([]*Message, len(tx.Body.Messages))
	for i, a := range tx.Body.Messages {
		msg, err := d.resolver.Unpack(a, wantModel)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "message %d", i)
		}
		msgs[i] = msg
	}

	out := &DecodedTx{
		Body: DecodedTxBody{
			Messages:                    msgs,
			Memo:                        tx.Body.Memo,
			TimeoutHeight:               tx.Body.TimeoutHeight,
			ExtensionOptions:            tx.Body.ExtensionOptions,
			NonCriticalExtensionOptions: tx.Body.NonCriticalExtensionOptions,
		},
		AuthInfo:   tx.AuthInfo,
		Signatures: tx.Signatures,
	}
	if wantModel || tx.AuthInfo == nil {
		return out, nil
	}

	plain, err := d.authInfoToPlain(tx.AuthInfo)
	if err != nil {
		return nil, err
	}
	out.AuthInfoPlain = plain

	return out, nil
}

// DecodeSignDoc decodes a serialized SignDoc.
func (d *TxDecoder) DecodeSignDoc(bz []byte, wantModel bool) (*Message, error) {
	return decodeFixed(d.signDoc, "sign doc", bz, wantModel)
}

// DecodeTxRaw decodes a serialized TxRaw.
func (d *TxDecoder) DecodeTxRaw(bz []byte, wantModel bool) (*Message, error) {
	return decodeFixed(d.txRaw, "tx raw", bz, wantModel)
}

// DecodeSigningInfo decodes a serialized slashing ValidatorSigningInfo.
func (d *TxDecoder) DecodeSigningInfo(bz []byte, wantModel bool) (*Message, error) {
	return decodeFixed(d.signingInfo, "signing info", bz, wantModel)
}

// DecodePublicKey decodes a public key Any. See DecodePublicKey.
func (d *TxDecoder) DecodePublicKey(a *codectypes.Any, wantModel bool) (*PublicKey, error) {
	return DecodePublicKey(a, wantModel)
}

func decodeFixed(c Codec, what string, bz []byte, wantModel bool) (*Message, error) {
	if len(bz) == 0 {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "%s can not be empty", what)
	}

	model, err := c.Decode(bz)
	if err != nil {
		return nil, err
	}

	msg := &Message{Type: proto.MessageName(model), codec: c}
	if wantModel {
		msg.Model = model
		return msg, nil
	}

	if msg.Plain, err = c.ToPlain(model); err != nil {
		return nil, err
	}

	return msg, nil
}

// authInfoToPlain projects auth info, decoding signer public keys through
// DecodePublicKey. Key types outside that set fall back to the generic
// JSON projection.
func (d *TxDecoder) authInfoToPlain(authInfo *txtypes.AuthInfo) (map[string]any, error) {
	signerInfos := make([]any, len(authInfo.SignerInfos))
	for i, si := range authInfo.SignerInfos {
		entry := map[string]any{
			"sequence": strconv.FormatUint(si.Sequence, 10),
		}

		if si.PublicKey != nil {
			pk, err := d.publicKeyToPlain(si.PublicKey)
			if err != nil {
				return nil, errorsmod.Wrapf(err, "signer %d", i)
			}
			entry["public_key"] = pk
		}

		if si.ModeInfo != nil {
			modeInfo, err := toPlain(d.json, si.ModeInfo)
			if err != nil {
				return nil, err
			}
			entry["mode_info"] = modeInfo
		}

		signerInfos[i] = entry
	}

	out := map[string]any{"signer_infos": signerInfos}
	if authInfo.Fee != nil {
		fee, err := toPlain(d.json, authInfo.Fee)
		if err != nil {
			return nil, err
		}
		out["fee"] = fee
	}

	return out, nil
}

func (d *TxDecoder) publicKeyToPlain(a *codectypes.Any) (map[string]any, error) {
	pk, err := DecodePublicKey(a, false)
	if err == nil {
		return pk.Plain, nil
	}
	if !errors.Is(err, types.ErrUnsupportedType) {
		return nil, err
	}

	return toPlain(d.json, a)
}
