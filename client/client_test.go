package client_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/initia-labs/gaia-sdk-go/client"
	"github.com/initia-labs/gaia-sdk-go/crypto/keyring/dbdao"
	"github.com/initia-labs/gaia-sdk-go/crypto/signing"
	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/tx"
	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	chainID  = "gaia-test"
	keyName  = "alice"
	password = "12345678"

	// sha256("gaia")
	privKeyHex = "b95ee4efc49878ebc6e8f93c29d7f692742dad7330574634428c8d6355794d88"

	addrB = "cosmos1qgpqyqszqgpqyqszqgpqyqszqgpqyqszrh8mx2"
	valA  = "cosmosvaloper1qyqszqgpqyqszqgpqyqszqgpqyqszqgph84tp0"
	valB  = "cosmosvaloper1qgpqyqszqgpqyqszqgpqyqszqgpqyqszxrnw2e"
)

type queryHandler func(req proto.Message) (proto.Message, error)

type fakeQuerier struct {
	mu       sync.Mutex
	handlers map[string]queryHandler
	paths    []string
}

func (f *fakeQuerier) Query(_ context.Context, path string, req, resp proto.Message) error {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	h, ok := f.handlers[path]
	f.mu.Unlock()

	if !ok {
		return types.ErrQueryFailed.Wrapf("no handler for %s", path)
	}

	out, err := h(req)
	if err != nil {
		return err
	}

	bz, err := proto.Marshal(out)
	if err != nil {
		return err
	}

	return proto.Unmarshal(bz, resp)
}

type fakeBroadcaster struct {
	txs   [][]byte
	modes []types.BroadcastMode
	err   error
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, txBytes []byte, mode types.BroadcastMode) (*rpc.TxResult, error) {
	f.txs = append(f.txs, txBytes)
	f.modes = append(f.modes, mode)

	hash := sha256.Sum256(txBytes)
	res := &rpc.TxResult{Hash: hex.EncodeToString(hash[:])}
	if f.err != nil {
		res.Code = 5
		return res, f.err
	}

	return res, nil
}

type fakeNode struct {
	block   *coretypes.ResultBlock
	txs     map[string]*coretypes.ResultTx
	search  *coretypes.ResultTxSearch
	queries []string
}

func (f *fakeNode) Block(context.Context, *int64) (*coretypes.ResultBlock, error) {
	return f.block, nil
}

func (f *fakeNode) BlockResults(_ context.Context, height *int64) (*coretypes.ResultBlockResults, error) {
	return &coretypes.ResultBlockResults{Height: *height}, nil
}

func (f *fakeNode) Tx(_ context.Context, hash []byte, _ bool) (*coretypes.ResultTx, error) {
	res, ok := f.txs[hex.EncodeToString(hash)]
	if !ok {
		return nil, types.ErrQueryFailed.Wrap("tx not found")
	}

	return res, nil
}

func (f *fakeNode) TxSearch(_ context.Context, query string, _ bool, _, _ *int, _ string) (*coretypes.ResultTxSearch, error) {
	f.queries = append(f.queries, query)
	return f.search, nil
}

func (f *fakeNode) Validators(context.Context, *int64, *int, *int) (*coretypes.ResultValidators, error) {
	return &coretypes.ResultValidators{}, nil
}

func (f *fakeNode) NetInfo(context.Context) (*coretypes.ResultNetInfo, error) {
	return &coretypes.ResultNetInfo{Listening: true}, nil
}

func (f *fakeNode) Status(context.Context) (*coretypes.ResultStatus, error) {
	return &coretypes.ResultStatus{}, nil
}

type testEnv struct {
	client      *client.Client
	querier     *fakeQuerier
	broadcaster *fakeBroadcaster
	node        *fakeNode
	sender      client.KeyInfo
}

func testConfig() types.ClientConfig {
	return types.DefaultClientConfig().
		WithNode("tcp://localhost:26657").
		WithChainID(chainID).
		WithFee(sdk.NewInt64Coin("uatom", 500))
}

// setup builds a client over fakes with the sha256("gaia") secp256k1 key
// imported as alice, account number 7 and sequence 3.
func setup(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		querier:     &fakeQuerier{handlers: map[string]queryHandler{}},
		broadcaster: &fakeBroadcaster{},
		node:        &fakeNode{txs: map[string]*coretypes.ResultTx{}},
	}

	c, err := client.NewClient(testConfig(),
		client.WithKeyDAO(dbdao.NewMemStore()),
		client.WithQuerier(env.querier),
		client.WithBroadcaster(env.broadcaster),
		client.WithNodeClient(env.node),
	)
	require.NoError(t, err)
	env.client = c

	env.sender, err = c.Keys().Import(keyName, password, privKeyHex, signing.Secp256k1Name)
	require.NoError(t, err)

	env.querier.handlers["/cosmos.auth.v1beta1.Query/Account"] = func(req proto.Message) (proto.Message, error) {
		address := req.(*authtypes.QueryAccountRequest).Address
		acc, err := codectypes.NewAnyWithValue(&authtypes.BaseAccount{Address: address, AccountNumber: 7, Sequence: 3})
		if err != nil {
			return nil, err
		}
		return &authtypes.QueryAccountResponse{Account: acc}, nil
	}

	return env
}

func baseTx() types.BaseTx {
	return types.BaseTx{From: keyName, Password: password}
}

// verifySent checks the signature of the i-th broadcast tx against the
// sender key and returns the decoded tx.
func (env *testEnv) verifySent(t *testing.T, i int, accountNumber uint64) *txtypes.Tx {
	t.Helper()

	require.Greater(t, len(env.broadcaster.txs), i)

	var raw txtypes.TxRaw
	require.NoError(t, proto.Unmarshal(env.broadcaster.txs[i], &raw))
	require.Len(t, raw.Signatures, 1)

	signBytes, err := tx.SignBytes(&txtypes.SignDoc{
		BodyBytes:     raw.BodyBytes,
		AuthInfoBytes: raw.AuthInfoBytes,
		ChainId:       chainID,
		AccountNumber: accountNumber,
	})
	require.NoError(t, err)

	pubKeyBz, err := base64.StdEncoding.DecodeString(env.sender.PubKey)
	require.NoError(t, err)
	pubKey := &secp256k1.PubKey{Key: pubKeyBz}
	require.True(t, pubKey.VerifySignature(signBytes, raw.Signatures[0]))

	var decoded txtypes.Tx
	require.NoError(t, proto.Unmarshal(env.broadcaster.txs[i], &decoded))

	return &decoded
}

func TestNewClient(t *testing.T) {
	testCases := []struct {
		name string
		cfg  types.ClientConfig
		err  error
	}{
		{"valid", testConfig(), nil},
		{"no chain id", testConfig().WithChainID(""), types.ErrInvalidConfig},
		{"no node", testConfig().WithNode(""), types.ErrInvalidConfig},
		{"zero gas", testConfig().WithGas(0), types.ErrInvalidConfig},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.NewClient(tc.cfg,
				client.WithQuerier(&fakeQuerier{}),
				client.WithBroadcaster(&fakeBroadcaster{}),
				client.WithNodeClient(&fakeNode{}),
			)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestClientWithIsImmutable(t *testing.T) {
	env := setup(t)
	c := env.client

	other := c.WithChainID("other-1").
		WithNetwork(types.Testnet).
		WithGas(42).
		WithFee(sdk.NewInt64Coin("stake", 1)).
		WithGasAdjustment(2)

	require.Equal(t, chainID, c.Config().ChainID)
	require.Equal(t, types.Mainnet, c.Config().Network)
	require.Equal(t, types.DefaultGas, c.Config().Gas)
	require.Equal(t, "uatom", c.Config().Fee.Denom)

	require.Equal(t, "other-1", other.Config().ChainID)
	require.Equal(t, types.Testnet, other.Config().Network)
	require.Equal(t, uint64(42), other.Config().Gas)
	require.Equal(t, "stake", other.Config().Fee.Denom)
	require.Equal(t, 2.0, other.Config().GasAdjustment)

	// the key store is shared until replaced
	_, err := other.Keys().Show(keyName)
	require.NoError(t, err)

	_, err = other.WithKeyDAO(dbdao.NewMemStore()).Keys().Show(keyName)
	require.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestBankSendPipeline(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	bt := baseTx()
	bt.Memo = "hello"
	bt.Mode = types.BroadcastCommit

	res, err := env.client.Bank().Send(ctx, addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 10)), bt)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hash)
	require.Equal(t, []types.BroadcastMode{types.BroadcastCommit}, env.broadcaster.modes)

	decoded := env.verifySent(t, 0, 7)
	require.Equal(t, "hello", decoded.Body.Memo)
	require.Len(t, decoded.Body.Messages, 1)
	require.Equal(t, "/cosmos.bank.v1beta1.MsgSend", decoded.Body.Messages[0].TypeUrl)

	require.Equal(t, uint64(3), decoded.AuthInfo.SignerInfos[0].Sequence)
	require.Equal(t, types.DefaultGas, decoded.AuthInfo.Fee.GasLimit)
	require.Equal(t, "500uatom", decoded.AuthInfo.Fee.Amount.String())

	msgs, err := env.client.Protobuf().DeserializeTx(base64.StdEncoding.EncodeToString(env.broadcaster.txs[0]), true)
	require.NoError(t, err)
	send, ok := msgs.Body.Messages[0].Model.(*banktypes.MsgSend)
	require.True(t, ok)
	require.Equal(t, env.sender.Address, send.FromAddress)
	require.Equal(t, addrB, send.ToAddress)
	require.Equal(t, "10uatom", send.Amount.String())
}

func TestBankSendInvalid(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		to     string
		amount sdk.Coins
		from   string
		err    error
	}{
		{"bad recipient", "cosmos1invalid", sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)), keyName, types.ErrInvalidArgument},
		{"wrong prefix", valA, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)), keyName, types.ErrInvalidArgument},
		{"empty amount", addrB, sdk.Coins{}, keyName, types.ErrInvalidArgument},
		{"zero amount", addrB, sdk.Coins{sdk.NewInt64Coin("uatom", 0)}, keyName, types.ErrInvalidArgument},
		{"unknown key", addrB, sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)), "bob", types.ErrKeyNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bt := baseTx()
			bt.From = tc.from

			_, err := env.client.Bank().Send(ctx, tc.to, tc.amount, bt)
			require.ErrorIs(t, err, tc.err)
		})
	}
	require.Empty(t, env.broadcaster.txs)
}

func TestBuildAndSignWrongPassword(t *testing.T) {
	env := setup(t)

	bt := baseTx()
	bt.Password = "wrong"

	_, err := env.client.Tx().BuildAndSign(context.Background(), []proto.Message{}, bt)
	require.ErrorIs(t, err, types.ErrInvalidPassword)
}

func TestBuildAndSignOffline(t *testing.T) {
	env := setup(t)
	delete(env.querier.handlers, "/cosmos.auth.v1beta1.Query/Account")

	bt := baseTx()
	bt.Offline = true
	bt.AccountNumber = 11
	bt.Sequence = 4
	bt.Gas = 90_000
	bt.Fee = sdk.NewCoins(sdk.NewInt64Coin("stake", 3))

	txBytes, err := env.client.Tx().BuildAndSign(context.Background(), []proto.Message{sendMsg(env)}, bt)
	require.NoError(t, err)
	require.Empty(t, env.querier.paths)

	res, err := env.client.Tx().Broadcast(context.Background(), txBytes, types.BroadcastSync)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hash)

	decoded := env.verifySent(t, 0, 11)
	require.Equal(t, uint64(4), decoded.AuthInfo.SignerInfos[0].Sequence)
	require.Equal(t, uint64(90_000), decoded.AuthInfo.Fee.GasLimit)
	require.Equal(t, "3stake", decoded.AuthInfo.Fee.Amount.String())
}

func TestBuildAndSendSimulate(t *testing.T) {
	env := setup(t)

	var simulated txtypes.Tx
	env.querier.handlers["/cosmos.tx.v1beta1.Service/Simulate"] = func(req proto.Message) (proto.Message, error) {
		if err := proto.Unmarshal(req.(*txtypes.SimulateRequest).TxBytes, &simulated); err != nil {
			return nil, err
		}
		return &txtypes.SimulateResponse{GasInfo: &sdk.GasInfo{GasUsed: 80_000}}, nil
	}

	bt := baseTx()
	bt.Simulate = true

	_, err := env.client.Tx().BuildAndSend(context.Background(), []proto.Message{sendMsg(env)}, bt)
	require.NoError(t, err)

	decoded := env.verifySent(t, 0, 7)
	require.Equal(t, uint64(120_000), decoded.AuthInfo.Fee.GasLimit)
	require.Len(t, simulated.Signatures, 1)
	require.Empty(t, simulated.Signatures[0])

	gas, err := env.client.Tx().Simulate(context.Background(), []proto.Message{sendMsg(env)}, baseTx())
	require.NoError(t, err)
	require.Equal(t, uint64(80_000), gas)
}

func TestBuildAndSendTxFailed(t *testing.T) {
	env := setup(t)
	env.broadcaster.err = types.ErrTxFailed.Wrap("insufficient funds")

	res, err := env.client.Tx().BuildAndSend(context.Background(), []proto.Message{sendMsg(env)}, baseTx())
	require.ErrorIs(t, err, types.ErrTxFailed)
	require.NotNil(t, res)
	require.Equal(t, uint32(5), res.Code)
}

func TestBroadcastEmpty(t *testing.T) {
	env := setup(t)

	_, err := env.client.Tx().Broadcast(context.Background(), nil, types.BroadcastSync)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestSignDoc(t *testing.T) {
	env := setup(t)

	doc := &txtypes.SignDoc{BodyBytes: []byte{1}, AuthInfoBytes: []byte{2}, ChainId: chainID, AccountNumber: 1}
	sig, err := env.client.Tx().SignDoc(context.Background(), doc, keyName, password)
	require.NoError(t, err)

	signBytes, err := tx.SignBytes(doc)
	require.NoError(t, err)

	pubKeyBz, err := base64.StdEncoding.DecodeString(env.sender.PubKey)
	require.NoError(t, err)
	require.True(t, (&secp256k1.PubKey{Key: pubKeyBz}).VerifySignature(signBytes, sig))

	_, err = env.client.Tx().SignDoc(context.Background(), nil, keyName, password)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func sendMsg(env *testEnv) proto.Message {
	return &banktypes.MsgSend{
		FromAddress: env.sender.Address,
		ToAddress:   addrB,
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uatom", 1)),
	}
}
