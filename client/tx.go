package client

import (
	"context"
	"encoding/hex"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/initia-labs/gaia-sdk-go/crypto/keyring"
	"github.com/initia-labs/gaia-sdk-go/crypto/signing"
	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/tx"
	"github.com/initia-labs/gaia-sdk-go/types"
)

const simulatePath = "/cosmos.tx.v1beta1.Service/Simulate"

// Tx builds, signs and submits transactions.
type Tx struct {
	c *Client
}

// signer is a decrypted key. privKey must be wiped after use.
type signer struct {
	wallet  keyring.Wallet
	privKey []byte
	pubKey  cryptotypes.PubKey
}

func (s *signer) wipe() {
	wipe(s.privKey)
}

func (c *Client) loadSigner(name, password string) (*signer, error) {
	wallet, err := c.keystore.Read(name)
	if err != nil {
		return nil, err
	}

	plain, err := c.keystore.Decrypt(wallet.PrivKey, password)
	if err != nil {
		return nil, err
	}

	privKey, err := hex.DecodeString(plain)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "stored private key of %s is not hex", name)
	}

	pubKey, err := signing.PubKey(privKey, wallet.Algo)
	if err != nil {
		return nil, err
	}

	return &signer{wallet: wallet, privKey: privKey, pubKey: pubKey}, nil
}

// BuildAndSign returns the encoded TxRaw of msgs signed by baseTx.From.
func (t Tx) BuildAndSign(ctx context.Context, msgs []proto.Message, baseTx types.BaseTx) ([]byte, error) {
	s, err := t.c.loadSigner(baseTx.From, baseTx.Password)
	if err != nil {
		return nil, err
	}
	defer s.wipe()

	accountNumber, sequence, err := t.accountInfo(ctx, s, baseTx)
	if err != nil {
		return nil, err
	}

	gas := t.gasLimit(baseTx)
	if baseTx.Simulate {
		gasUsed, err := t.simulate(ctx, msgs, baseTx, s.pubKey, sequence)
		if err != nil {
			return nil, err
		}
		gas = uint64(float64(gasUsed) * t.c.cfg.GasAdjustment)
	}

	doc, err := t.buildSignDoc(msgs, baseTx, s.pubKey, accountNumber, sequence, gas)
	if err != nil {
		return nil, err
	}

	sig, err := signing.Sign(doc, s.privKey, s.wallet.Algo)
	if err != nil {
		return nil, err
	}

	return tx.EncodeTxRaw(tx.NewTxRaw(doc, sig))
}

// Broadcast submits already signed tx bytes.
func (t Tx) Broadcast(ctx context.Context, txBytes []byte, mode types.BroadcastMode) (*rpc.TxResult, error) {
	if len(txBytes) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx bytes can not be empty")
	}

	return t.c.broadcaster.Broadcast(ctx, txBytes, mode)
}

// BuildAndSend signs msgs and broadcasts them in baseTx.Mode.
func (t Tx) BuildAndSend(ctx context.Context, msgs []proto.Message, baseTx types.BaseTx) (*rpc.TxResult, error) {
	txBytes, err := t.BuildAndSign(ctx, msgs, baseTx)
	if err != nil {
		return nil, err
	}

	res, err := t.Broadcast(ctx, txBytes, baseTx.Mode)
	if err != nil {
		return res, err
	}

	t.c.logger.Debug("tx sent", "hash", res.Hash, "from", baseTx.From, "msgs", len(msgs))
	return res, nil
}

// Simulate returns the gas msgs would consume, before adjustment.
func (t Tx) Simulate(ctx context.Context, msgs []proto.Message, baseTx types.BaseTx) (uint64, error) {
	s, err := t.c.loadSigner(baseTx.From, baseTx.Password)
	if err != nil {
		return 0, err
	}
	defer s.wipe()

	_, sequence, err := t.accountInfo(ctx, s, baseTx)
	if err != nil {
		return 0, err
	}

	return t.simulate(ctx, msgs, baseTx, s.pubKey, sequence)
}

// SignDoc signs an externally built sign doc with the key called name.
func (t Tx) SignDoc(_ context.Context, doc *txtypes.SignDoc, name, password string) ([]byte, error) {
	if doc == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "sign doc can not be nil")
	}

	s, err := t.c.loadSigner(name, password)
	if err != nil {
		return nil, err
	}
	defer s.wipe()

	return signing.Sign(doc, s.privKey, s.wallet.Algo)
}

func (t Tx) simulate(ctx context.Context, msgs []proto.Message, baseTx types.BaseTx, pubKey cryptotypes.PubKey, sequence uint64) (uint64, error) {
	doc, err := t.buildSignDoc(msgs, baseTx, pubKey, 0, sequence, t.gasLimit(baseTx))
	if err != nil {
		return 0, err
	}

	txBytes, err := tx.EncodeTxRaw(tx.NewTxRaw(doc, []byte{}))
	if err != nil {
		return 0, err
	}

	var resp txtypes.SimulateResponse
	if err := t.c.querier.Query(ctx, simulatePath, &txtypes.SimulateRequest{TxBytes: txBytes}, &resp); err != nil {
		return 0, err
	}
	if resp.GasInfo == nil {
		return 0, errorsmod.Wrap(types.ErrQueryFailed, "simulation returned no gas info")
	}

	t.c.logger.Debug("tx simulated", "gas_used", resp.GasInfo.GasUsed)
	return resp.GasInfo.GasUsed, nil
}

func (t Tx) buildSignDoc(
	msgs []proto.Message,
	baseTx types.BaseTx,
	pubKey cryptotypes.PubKey,
	accountNumber, sequence, gas uint64,
) (*txtypes.SignDoc, error) {
	body, err := t.c.builder.BuildTxBody(msgs, baseTx.Memo, baseTx.TimeoutHeight)
	if err != nil {
		return nil, err
	}

	authInfo, err := tx.NewAuthInfo(
		[]tx.SignerData{{PubKey: pubKey, Sequence: sequence}},
		tx.Fee{Amount: t.fee(baseTx), GasLimit: gas},
	)
	if err != nil {
		return nil, err
	}

	return tx.BuildSignDoc(body, authInfo, t.c.cfg.ChainID, accountNumber)
}

func (t Tx) accountInfo(ctx context.Context, s *signer, baseTx types.BaseTx) (uint64, uint64, error) {
	if baseTx.Offline {
		return baseTx.AccountNumber, baseTx.Sequence, nil
	}

	acc, err := t.c.Auth().QueryAccount(ctx, s.wallet.Address)
	if err != nil {
		return 0, 0, err
	}

	return acc.GetAccountNumber(), acc.GetSequence(), nil
}

func (t Tx) gasLimit(baseTx types.BaseTx) uint64 {
	if baseTx.Gas != 0 {
		return baseTx.Gas
	}

	return t.c.cfg.Gas
}

func (t Tx) fee(baseTx types.BaseTx) sdk.Coins {
	if len(baseTx.Fee) != 0 {
		return baseTx.Fee
	}

	fee := t.c.cfg.Fee
	if fee.Denom == "" || fee.Amount.IsNil() || !fee.Amount.IsPositive() {
		return nil
	}

	return sdk.NewCoins(fee)
}

// send signs msgs with baseTx.From and broadcasts them.
func (c *Client) send(ctx context.Context, baseTx types.BaseTx, msgs ...proto.Message) (*rpc.TxResult, error) {
	return c.Tx().BuildAndSend(ctx, msgs, baseTx)
}

// senderAddress returns the account address of the key called name.
func (c *Client) senderAddress(name string) (string, error) {
	wallet, err := c.keystore.Read(name)
	if err != nil {
		return "", err
	}

	return wallet.Address, nil
}
