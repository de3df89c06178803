package tx

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	signingtypes "github.com/cosmos/cosmos-sdk/types/tx/signing"

	"github.com/initia-labs/gaia-sdk-go/codec"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Fee is the fee a transaction pays.
type Fee struct {
	Amount   sdk.Coins
	GasLimit uint64
	// Payer and Granter are optional.
	Payer   string
	Granter string
}

// SignerData describes one signer of a transaction.
type SignerData struct {
	PubKey   cryptotypes.PubKey
	Sequence uint64
}

// Builder assembles tx bodies, auth infos and sign docs.
type Builder struct {
	resolver *codec.Resolver
}

func NewBuilder(resolver *codec.Resolver) *Builder {
	return &Builder{resolver: resolver}
}

// BuildTxBody packs msgs in order through the registry.
func (b *Builder) BuildTxBody(msgs []proto.Message, memo string, timeoutHeight uint64) (*txtypes.TxBody, error) {
	if len(msgs) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "at least one message is required")
	}

	anys := make([]*codectypes.Any, len(msgs))
	for i, msg := range msgs {
		a, err := b.resolver.Pack(msg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "message %d", i)
		}
		anys[i] = a
	}

	return &txtypes.TxBody{
		Messages:      anys,
		Memo:          memo,
		TimeoutHeight: timeoutHeight,
	}, nil
}

// NewAuthInfo builds SIGN_MODE_DIRECT signer infos and the fee. Fee coins
// are sorted and zero coins dropped so that equal fee sets encode
// identically.
func NewAuthInfo(signers []SignerData, fee Fee) (*txtypes.AuthInfo, error) {
	if len(signers) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "at least one signer is required")
	}
	if err := types.ValidateCoins(fee.Amount); err != nil {
		return nil, err
	}

	signerInfos := make([]*txtypes.SignerInfo, len(signers))
	for i, signer := range signers {
		if signer.PubKey == nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "signer %d has no public key", i)
		}

		pk, err := codectypes.NewAnyWithValue(signer.PubKey)
		if err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "signer %d: %s", i, err)
		}

		signerInfos[i] = &txtypes.SignerInfo{
			PublicKey: pk,
			ModeInfo: &txtypes.ModeInfo{
				Sum: &txtypes.ModeInfo_Single_{
					Single: &txtypes.ModeInfo_Single{Mode: signingtypes.SignMode_SIGN_MODE_DIRECT},
				},
			},
			Sequence: signer.Sequence,
		}
	}

	return &txtypes.AuthInfo{
		SignerInfos: signerInfos,
		Fee: &txtypes.Fee{
			Amount:   sdk.NewCoins(fee.Amount...),
			GasLimit: fee.GasLimit,
			Payer:    fee.Payer,
			Granter:  fee.Granter,
		},
	}, nil
}

// BuildSignDoc encodes body and authInfo and binds them to the chain and
// account.
func BuildSignDoc(body *txtypes.TxBody, authInfo *txtypes.AuthInfo, chainID string, accountNumber uint64) (*txtypes.SignDoc, error) {
	if body == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx body can not be nil")
	}
	if authInfo == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "auth info can not be nil")
	}
	if chainID == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "chain id can not be empty")
	}

	bodyBytes, err := proto.Marshal(body)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode tx body: %s", err)
	}

	authInfoBytes, err := proto.Marshal(authInfo)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode auth info: %s", err)
	}

	return &txtypes.SignDoc{
		BodyBytes:     bodyBytes,
		AuthInfoBytes: authInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	}, nil
}

// SignBytes returns the bytes a signer signs for doc.
func SignBytes(doc *txtypes.SignDoc) ([]byte, error) {
	if doc == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "sign doc can not be nil")
	}

	bz, err := proto.Marshal(doc)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode sign doc: %s", err)
	}

	return bz, nil
}

// NewTxRaw attaches signatures, in signer order, to the encoded body and
// auth info of doc.
func NewTxRaw(doc *txtypes.SignDoc, signatures ...[]byte) *txtypes.TxRaw {
	return &txtypes.TxRaw{
		BodyBytes:     doc.BodyBytes,
		AuthInfoBytes: doc.AuthInfoBytes,
		Signatures:    signatures,
	}
}

// EncodeTxRaw returns the broadcastable bytes of raw.
func EncodeTxRaw(raw *txtypes.TxRaw) ([]byte, error) {
	if raw == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx raw can not be nil")
	}

	bz, err := proto.Marshal(raw)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode tx raw: %s", err)
	}

	return bz, nil
}
