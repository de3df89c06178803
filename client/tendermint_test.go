package client_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// signedTx returns an offline signed MsgSend with the given sequence.
func signedTx(t *testing.T, env *testEnv, sequence uint64) []byte {
	t.Helper()

	bt := baseTx()
	bt.Offline = true
	bt.AccountNumber = 7
	bt.Sequence = sequence

	bz, err := env.client.Tx().BuildAndSign(context.Background(), []proto.Message{sendMsg(env)}, bt)
	require.NoError(t, err)

	return bz
}

func TestQueryBlock(t *testing.T) {
	env := setup(t)

	txs := cmttypes.Txs{signedTx(t, env, 1), signedTx(t, env, 2), signedTx(t, env, 3)}
	env.node.block = &coretypes.ResultBlock{Block: &cmttypes.Block{Data: cmttypes.Data{Txs: txs}}}

	block, err := env.client.Tendermint().QueryBlock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, block.Txs, 3)

	for i, decoded := range block.Txs {
		require.Equal(t, uint64(i+1), decoded.AuthInfo.SignerInfos[0].Sequence)
		require.IsType(t, &banktypes.MsgSend{}, decoded.Body.Messages[0].Model)
	}

	env.node.block.Block.Data.Txs = append(txs, cmttypes.Tx{0xff, 0x01})
	_, err = env.client.Tendermint().QueryBlock(context.Background(), 0)
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	env.node.block = &coretypes.ResultBlock{}
	_, err = env.client.Tendermint().QueryBlock(context.Background(), 5)
	require.ErrorIs(t, err, types.ErrQueryFailed)
}

func TestQueryTx(t *testing.T) {
	env := setup(t)

	txBytes := signedTx(t, env, 4)
	hash := sha256.Sum256(txBytes)
	env.node.txs[hex.EncodeToString(hash[:])] = &coretypes.ResultTx{
		Hash:     hash[:],
		Height:   12,
		TxResult: abci.ExecTxResult{GasUsed: 5},
		Tx:       txBytes,
	}

	info, err := env.client.Tendermint().QueryTx(context.Background(), "0x"+hex.EncodeToString(hash[:]))
	require.NoError(t, err)
	require.Equal(t, int64(12), info.Height)
	require.Equal(t, int64(5), info.Result.GasUsed)
	require.Equal(t, uint64(4), info.Tx.AuthInfo.SignerInfos[0].Sequence)

	_, err = env.client.Tendermint().QueryTx(context.Background(), "not-hex")
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = env.client.Tendermint().QueryTx(context.Background(), "")
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestSearchTxs(t *testing.T) {
	env := setup(t)

	env.node.search = &coretypes.ResultTxSearch{
		TotalCount: 2,
		Txs: []*coretypes.ResultTx{
			{Height: 3, Tx: signedTx(t, env, 1)},
			{Height: 4, Tx: signedTx(t, env, 2)},
		},
	}

	query := types.NewEventQueryBuilder().
		AddCondition(types.NewCond(types.EventKeyAction).EQ(types.EventActionSend)).
		AddCondition(types.NewCond(types.EventKeySender).EQ(env.sender.Address))

	res, err := env.client.Tendermint().SearchTxs(context.Background(), query, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	require.Len(t, res.Txs, 2)
	require.Equal(t, int64(3), res.Txs[0].Height)
	require.Equal(t, int64(4), res.Txs[1].Height)

	require.Equal(t, []string{
		"message.action = '/cosmos.bank.v1beta1.MsgSend' AND message.sender = '" + env.sender.Address + "'",
	}, env.node.queries)

	_, err = env.client.Tendermint().SearchTxs(context.Background(), types.NewEventQueryBuilder(), 1, 10)
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = env.client.Tendermint().SearchTxs(context.Background(), nil, 1, 10)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestNodeInfo(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	netInfo, err := env.client.Tendermint().QueryNetInfo(ctx)
	require.NoError(t, err)
	require.True(t, netInfo.Listening)

	results, err := env.client.Tendermint().QueryBlockResult(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, int64(8), results.Height)

	_, err = env.client.Tendermint().QueryValidators(ctx, 0, 0, 0)
	require.NoError(t, err)
}

func TestProtobufDeserialize(t *testing.T) {
	env := setup(t)
	p := env.client.Protobuf()

	txBytes := signedTx(t, env, 9)
	encoded := base64.StdEncoding.EncodeToString(txBytes)

	decoded, err := p.DeserializeTx(encoded, false)
	require.NoError(t, err)
	require.Equal(t, "cosmos.bank.v1beta1.MsgSend", decoded.Body.Messages[0].Plain["type"])
	require.Equal(t, addrB, decoded.Body.Messages[0].Plain["to_address"])
	require.NotNil(t, decoded.AuthInfoPlain)

	msg, err := p.UnpackMsg(decoded.AuthInfo.SignerInfos[0].PublicKey, true)
	require.ErrorIs(t, err, types.ErrUnsupportedType)
	require.Nil(t, msg)

	pubKey, err := p.DeserializePubkey(decoded.AuthInfo.SignerInfos[0].PublicKey, false)
	require.NoError(t, err)
	require.Equal(t, env.sender.PubKey, pubKey.Plain["key"])

	var raw txtypes.TxRaw
	require.NoError(t, proto.Unmarshal(txBytes, &raw))

	rawMsg, err := p.DeserializeTxRaw(encoded, true)
	require.NoError(t, err)
	require.Equal(t, raw.Signatures, rawMsg.Model.(*txtypes.TxRaw).Signatures)

	docBz, err := proto.Marshal(&txtypes.SignDoc{BodyBytes: raw.BodyBytes, AuthInfoBytes: raw.AuthInfoBytes, ChainId: chainID, AccountNumber: 7})
	require.NoError(t, err)

	doc, err := p.DeserializeSignDoc(base64.StdEncoding.EncodeToString(docBz), false)
	require.NoError(t, err)
	require.Equal(t, chainID, doc.Plain["chain_id"])

	testCases := []struct {
		name string
		fn   func() error
	}{
		{"empty tx", func() error { _, err := p.DeserializeTx("", false); return err }},
		{"tx not base64", func() error { _, err := p.DeserializeTx("%%%", false); return err }},
		{"empty sign doc", func() error { _, err := p.DeserializeSignDoc("", false); return err }},
		{"empty tx raw", func() error { _, err := p.DeserializeTxRaw("", false); return err }},
		{"empty signing info", func() error { _, err := p.DeserializeSigningInfo("", false); return err }},
		{"nil pubkey", func() error { _, err := p.DeserializePubkey(nil, false); return err }},
		{"nil msg", func() error { _, err := p.UnpackMsg(nil, false); return err }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.fn(), types.ErrInvalidArgument)
		})
	}
}
