package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/initia-labs/gaia-sdk-go/config"
	"github.com/initia-labs/gaia-sdk-go/types"
)

func writeTestConfig(t *testing.T) (string, config.Config) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.ChainID = "cosmoshub-4"
	cfg.Fee = "500uatom"
	cfg.Timeout = 30 * time.Second

	path := filepath.Join(t.TempDir(), "config", config.FileName)
	require.NoError(t, config.WriteConfigFile(path, cfg))

	return path, cfg
}

func TestWriteReadConfigFile(t *testing.T) {
	path, cfg := writeTestConfig(t)

	read, err := config.ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, read)
}

func TestReadConfigFileEnvOverride(t *testing.T) {
	path, _ := writeTestConfig(t)

	t.Setenv("GAIA_CHAIN_ID", "theta-testnet-001")
	t.Setenv("GAIA_GAS", "300000")
	t.Setenv("GAIA_NETWORK", "testnet")

	read, err := config.ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, "theta-testnet-001", read.ChainID)
	require.Equal(t, uint64(300000), read.Gas)
	require.Equal(t, "testnet", read.Network)
}

func TestReadConfigFileErrors(t *testing.T) {
	_, err := config.ReadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(`gas = "lots"`), 0o600))

	_, err = config.ReadConfigFile(path)
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestSetValue(t *testing.T) {
	path, _ := writeTestConfig(t)

	require.NoError(t, config.SetValue(path, config.KeyGas, "250000"))
	require.NoError(t, config.SetValue(path, config.KeyGasAdjustment, "1.8"))
	require.NoError(t, config.SetValue(path, config.KeyNode, "tcp://node:26657"))

	read, err := config.ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, uint64(250000), read.Gas)
	require.Equal(t, 1.8, read.GasAdjustment)
	require.Equal(t, "tcp://node:26657", read.Node)
	require.Equal(t, "cosmoshub-4", read.ChainID)

	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "nope", "1"},
		{"bad gas", config.KeyGas, "many"},
		{"bad adjustment", config.KeyGasAdjustment, "x"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, config.SetValue(path, tc.key, tc.value), types.ErrInvalidConfig)
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChainID = "cosmoshub-4"
	cfg.Fee = "500uatom"
	cfg.Network = "testnet"
	cfg.Bech32Prefix = "gaia"

	clientCfg, err := cfg.ClientConfig()
	require.NoError(t, err)
	require.NoError(t, clientCfg.Validate())
	require.Equal(t, "cosmoshub-4", clientCfg.ChainID)
	require.Equal(t, types.Testnet, clientCfg.Network)
	require.Equal(t, "500uatom", clientCfg.Fee.String())
	require.Equal(t, "gaiavaloper", clientCfg.Bech32Prefix.ValAddr)

	cfg.Fee = "five atoms"
	_, err = cfg.ClientConfig()
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	cfg.Fee = ""
	cfg.Network = "devnet"
	_, err = cfg.ClientConfig()
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestClientConfig_ChainIDFromNetwork(t *testing.T) {
	testCases := []struct {
		network string
		chainID string
		expect  string
	}{
		{"mainnet", "", types.MainnetChainID},
		{"testnet", "", types.TestnetChainID},
		{"testnet", "my-chain-1", "my-chain-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.network+"/"+tc.chainID, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Network = tc.network
			cfg.ChainID = tc.chainID

			clientCfg, err := cfg.ClientConfig()
			require.NoError(t, err)
			require.Equal(t, tc.expect, clientCfg.ChainID)
		})
	}
}

func TestReadConfigFile_EmptyChainID(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	cfg := config.DefaultConfig()
	cfg.ChainID = ""
	cfg.Network = "testnet"
	require.NoError(t, config.WriteConfigFile(path, cfg))

	read, err := config.ReadConfigFile(path)
	require.NoError(t, err)
	require.Empty(t, read.ChainID)

	clientCfg, err := read.ClientConfig()
	require.NoError(t, err)
	require.Equal(t, types.TestnetChainID, clientCfg.ChainID)
	require.Equal(t, types.Testnet, clientCfg.Network)
}
