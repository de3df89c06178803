package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cosmos/gogoproto/proto"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/config"
	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	password = "12345678"

	// sha256("gaia")
	privKeyHex = "b95ee4efc49878ebc6e8f93c29d7f692742dad7330574634428c8d6355794d88"

	addrB = "cosmos1qgpqyqszqgpqyqszqgpqyqszqgpqyqszrh8mx2"
)

// run executes gaiacli with args against home, feeding stdin to the
// command input, and returns what was written to the output.
func run(t *testing.T, home, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	cmd.SetArgs(append(args, "--"+flags.FlagHome, home))
	cmd.SetIn(strings.NewReader(stdin))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigInitSetShow(t *testing.T) {
	home := t.TempDir()

	_, err := run(t, home, "", "config", "init", "--chain-id", "theta-testnet-001")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(home, config.FileName))

	// the file exists now
	_, err = run(t, home, "", "config", "init")
	require.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = run(t, home, "", "config", "init", "--force")
	require.NoError(t, err)

	_, err = run(t, home, "", "config", "set", "gas", "300000")
	require.NoError(t, err)

	_, err = run(t, home, "", "config", "set", "unknown-key", "1")
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	out, err := run(t, home, "", "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	require.Equal(t, "theta-testnet-001", cfg.ChainID)
	require.Equal(t, uint64(300000), cfg.Gas)
	require.Equal(t, "tcp://localhost:26657", cfg.Node)
}

func TestConfigShow_Yaml(t *testing.T) {
	out, err := run(t, t.TempDir(), "", "config", "show", "-o", "yaml")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	require.Equal(t, config.DefaultChainID, cfg["chain-id"])
	require.Equal(t, "yaml", cfg["output"])
}

func TestConfigShow_UnknownOutput(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "config", "show", "-o", "xml")
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestKeys(t *testing.T) {
	home := t.TempDir()

	out, err := run(t, home, password+"\n", "keys", "import", "alice", privKeyHex)
	require.NoError(t, err)

	var imported map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &imported))
	require.Equal(t, "alice", imported["name"])
	require.Equal(t, "secp256k1", imported["algo"])
	require.True(t, strings.HasPrefix(imported["address"], "cosmos1"))

	// the key store is persisted under home
	_, err = os.Stat(filepath.Join(home, "keys"))
	require.NoError(t, err)

	_, err = run(t, home, password+"\n", "keys", "import", "alice", privKeyHex)
	require.ErrorIs(t, err, types.ErrKeyExists)

	out, err = run(t, home, "", "keys", "show", "alice")
	require.NoError(t, err)

	var shown map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Equal(t, imported, shown)

	_, err = run(t, home, password+"\n", "keys", "import", "bob", privKeyHex, "--algo", "eth_secp256k1")
	require.NoError(t, err)

	out, err = run(t, home, "", "keys", "list")
	require.NoError(t, err)

	var list []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)

	out, err = run(t, home, password+"\n", "keys", "export", "alice")
	require.NoError(t, err)
	require.Equal(t, privKeyHex, strings.TrimSpace(out))

	_, err = run(t, home, "wrong\n", "keys", "export", "alice")
	require.ErrorIs(t, err, types.ErrInvalidPassword)

	_, err = run(t, home, "wrong\n", "keys", "delete", "alice")
	require.ErrorIs(t, err, types.ErrInvalidPassword)

	_, err = run(t, home, password+"\n", "keys", "delete", "alice")
	require.NoError(t, err)

	_, err = run(t, home, "", "keys", "show", "alice")
	require.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestKeys_Recover(t *testing.T) {
	home := t.TempDir()
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	out, err := run(t, home, mnemonic+"\n"+password+"\n", "keys", "recover", "alice")
	require.NoError(t, err)

	var first map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &first))

	out, err = run(t, home, mnemonic+"\n"+password+"\n", "keys", "recover", "bob")
	require.NoError(t, err)

	var second map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &second))
	require.Equal(t, first["address"], second["address"])
}

func testTx(t *testing.T) []byte {
	t.Helper()

	msg, err := codectypes.NewAnyWithValue(&banktypes.MsgSend{
		FromAddress: addrB,
		ToAddress:   addrB,
		Amount:      sdk.NewCoins(sdk.NewInt64Coin("uatom", 10)),
	})
	require.NoError(t, err)

	bz, err := proto.Marshal(&txtypes.Tx{
		Body: &txtypes.TxBody{
			Messages: []*codectypes.Any{msg},
			Memo:     "hello",
		},
		AuthInfo: &txtypes.AuthInfo{
			Fee: &txtypes.Fee{
				Amount:   sdk.NewCoins(sdk.NewInt64Coin("uatom", 500)),
				GasLimit: 200000,
			},
		},
		Signatures: [][]byte{{1, 2, 3}},
	})
	require.NoError(t, err)

	return bz
}

func TestDecodeTx(t *testing.T) {
	bz := testTx(t)

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"base64", []string{base64.StdEncoding.EncodeToString(bz)}},
		{"hex", []string{hex.EncodeToString(bz), "--hex"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, t.TempDir(), "", append([]string{"decode", "tx"}, tc.args...)...)
			require.NoError(t, err)

			var decoded struct {
				Body struct {
					Messages []map[string]any `json:"messages"`
					Memo     string           `json:"memo"`
				} `json:"body"`
				AuthInfo struct {
					Fee struct {
						GasLimit string `json:"gas_limit"`
					} `json:"fee"`
				} `json:"auth_info"`
				Signatures []string `json:"signatures"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &decoded))

			require.Len(t, decoded.Body.Messages, 1)
			require.Equal(t, "cosmos.bank.v1beta1.MsgSend", decoded.Body.Messages[0]["type"])
			require.Equal(t, addrB, decoded.Body.Messages[0]["to_address"])
			require.Equal(t, "hello", decoded.Body.Memo)
			require.Equal(t, "200000", decoded.AuthInfo.Fee.GasLimit)
			require.Equal(t, []string{"AQID"}, decoded.Signatures)
		})
	}
}

func TestDecode_InvalidInput(t *testing.T) {
	for _, args := range [][]string{
		{"decode", "tx", "not base64!"},
		{"decode", "tx", "zz", "--hex"},
		{"decode", "signdoc", " "},
		{"decode", "pubkey", base64.StdEncoding.EncodeToString([]byte{0xff})},
	} {
		_, err := run(t, t.TempDir(), "", args...)
		require.ErrorIs(t, err, types.ErrInvalidArgument, args)
	}
}

func TestDecodePubKey(t *testing.T) {
	key := bytes.Repeat([]byte{2}, secp256k1.PubKeySize)

	a, err := codectypes.NewAnyWithValue(&secp256k1.PubKey{Key: key})
	require.NoError(t, err)
	bz, err := proto.Marshal(a)
	require.NoError(t, err)

	out, err := run(t, t.TempDir(), "", "decode", "pubkey", base64.StdEncoding.EncodeToString(bz))
	require.NoError(t, err)

	var pk map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &pk))
	require.Equal(t, "cosmos.crypto.secp256k1.PubKey", pk["type"])
	require.Equal(t, base64.StdEncoding.EncodeToString(key), pk["key"])
}

func TestQueryBlock_InvalidHeight(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "query", "block", "latest")
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestReadTxFlags(t *testing.T) {
	cctx := &cmdContext{config: config.DefaultConfig()}

	cmd := txSendCmd()
	for name, value := range map[string]string{
		flags.FlagGas:           "150000",
		flags.FlagFee:           "500uatom",
		flags.FlagGasAdjustment: "2",
		flags.FlagMemo:          "memo",
		flags.FlagBroadcastMode: "commit",
		flags.FlagOffline:       "true",
		flags.FlagAccountNumber: "7",
		flags.FlagSequence:      "3",
	} {
		require.NoError(t, cmd.Flags().Set(name, value))
	}

	cfg, baseTx, err := readTxFlags(cmd, cctx)
	require.NoError(t, err)
	require.Equal(t, 2.0, cfg.GasAdjustment)
	require.Equal(t, uint64(150000), baseTx.Gas)
	require.Equal(t, "500uatom", baseTx.Fee.String())
	require.Equal(t, "memo", baseTx.Memo)
	require.Equal(t, types.BroadcastCommit, baseTx.Mode)
	require.True(t, baseTx.Offline)
	require.Equal(t, uint64(7), baseTx.AccountNumber)
	require.Equal(t, uint64(3), baseTx.Sequence)

	// unchanged flags keep the configured defaults
	cfg, baseTx, err = readTxFlags(txSendCmd(), cctx)
	require.NoError(t, err)
	require.Equal(t, types.DefaultGasAdjustment, cfg.GasAdjustment)
	require.Zero(t, baseTx.Gas)
	require.Empty(t, baseTx.Fee)
	require.Equal(t, types.BroadcastSync, baseTx.Mode)

	bad := txSendCmd()
	require.NoError(t, bad.Flags().Set(flags.FlagBroadcastMode, "later"))
	_, _, err = readTxFlags(bad, cctx)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
}
