package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// EnvPrefix prefixes the environment variables overriding config keys,
// e.g. GAIA_CHAIN_ID.
const EnvPrefix = "GAIA"

// config keys
const (
	KeyNode          = "node"
	KeyGRPCAddr      = "grpc-addr"
	KeyChainID       = "chain-id"
	KeyNetwork       = "network"
	KeyGas           = "gas"
	KeyFee           = "fee"
	KeyGasAdjustment = "gas-adjustment"
	KeyTimeout       = "timeout"
	KeyBech32Prefix  = "bech32-prefix"
	KeyOutput        = "output"
)

// FileName is the name of the config file inside the home directory.
const FileName = "client.toml"

// Config is the on-disk client configuration.
type Config struct {
	Node          string        `mapstructure:"node" json:"node"`
	GRPCAddr      string        `mapstructure:"grpc-addr" json:"grpc-addr"`
	ChainID       string        `mapstructure:"chain-id" json:"chain-id"`
	Network       string        `mapstructure:"network" json:"network"`
	Gas           uint64        `mapstructure:"gas" json:"gas"`
	Fee           string        `mapstructure:"fee" json:"fee"`
	GasAdjustment float64       `mapstructure:"gas-adjustment" json:"gas-adjustment"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
	Bech32Prefix  string        `mapstructure:"bech32-prefix" json:"bech32-prefix"`
	Output        string        `mapstructure:"output" json:"output"`
}

// DefaultChainID is the chain-id of the cosmos hub.
const DefaultChainID = types.MainnetChainID

// DefaultConfig returns the settings of a local gaia mainnet node.
func DefaultConfig() Config {
	return Config{
		Node:          "tcp://localhost:26657",
		ChainID:       DefaultChainID,
		Network:       types.Mainnet.String(),
		Gas:           types.DefaultGas,
		Fee:           "",
		GasAdjustment: types.DefaultGasAdjustment,
		Timeout:       types.DefaultTimeout,
		Bech32Prefix:  types.DefaultAccountAddressPrefix,
		Output:        "json",
	}
}

// ClientConfig converts c into a client configuration. An empty chain-id
// is taken from the network. It does not validate the result; NewClient
// does.
func (c Config) ClientConfig() (types.ClientConfig, error) {
	network, err := types.NetworkFromString(c.Network)
	if err != nil {
		return types.ClientConfig{}, err
	}

	chainID := c.ChainID
	if chainID == "" {
		chainID = network.ChainID()
	}

	cfg := types.DefaultClientConfig().
		WithNode(c.Node).
		WithGRPCAddr(c.GRPCAddr).
		WithChainID(chainID).
		WithNetwork(network).
		WithGas(c.Gas).
		WithGasAdjustment(c.GasAdjustment).
		WithBech32Prefix(types.NewBech32Prefix(c.Bech32Prefix))
	if c.Timeout > 0 {
		cfg = cfg.WithTimeout(c.Timeout)
	}

	if c.Fee != "" {
		fee, err := sdk.ParseCoinNormalized(c.Fee)
		if err != nil {
			return types.ClientConfig{}, errorsmod.Wrapf(types.ErrInvalidConfig, "invalid fee %q: %s", c.Fee, err)
		}
		cfg = cfg.WithFee(fee)
	}

	return cfg, nil
}

// NewViper returns a viper instance carrying the defaults and reading
// GAIA_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault(KeyNode, def.Node)
	v.SetDefault(KeyGRPCAddr, def.GRPCAddr)
	v.SetDefault(KeyChainID, def.ChainID)
	v.SetDefault(KeyNetwork, def.Network)
	v.SetDefault(KeyGas, def.Gas)
	v.SetDefault(KeyFee, def.Fee)
	v.SetDefault(KeyGasAdjustment, def.GasAdjustment)
	v.SetDefault(KeyTimeout, def.Timeout.String())
	v.SetDefault(KeyBech32Prefix, def.Bech32Prefix)
	v.SetDefault(KeyOutput, def.Output)

	return v
}

// ReadConfigFile reads the config at path. Environment variables take
// precedence over the file.
func ReadConfigFile(path string) (Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, errorsmod.Wrapf(types.ErrInvalidConfig, "failed to read %s: %s", path, err)
	}

	return FromViper(v)
}

// FromViper loads a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	gas, err := cast.ToUint64E(v.Get(KeyGas))
	if err != nil {
		return Config{}, errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %s", KeyGas, err)
	}

	gasAdjustment, err := cast.ToFloat64E(v.Get(KeyGasAdjustment))
	if err != nil {
		return Config{}, errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %s", KeyGasAdjustment, err)
	}

	timeout, err := cast.ToDurationE(v.Get(KeyTimeout))
	if err != nil {
		return Config{}, errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %s", KeyTimeout, err)
	}

	return Config{
		Node:          cast.ToString(v.Get(KeyNode)),
		GRPCAddr:      cast.ToString(v.Get(KeyGRPCAddr)),
		ChainID:       cast.ToString(v.Get(KeyChainID)),
		Network:       cast.ToString(v.Get(KeyNetwork)),
		Gas:           gas,
		Fee:           cast.ToString(v.Get(KeyFee)),
		GasAdjustment: gasAdjustment,
		Timeout:       timeout,
		Bech32Prefix:  cast.ToString(v.Get(KeyBech32Prefix)),
		Output:        cast.ToString(v.Get(KeyOutput)),
	}, nil
}

var configTemplate = template.Must(template.New("client").Parse(DefaultConfigTemplate))

// WriteConfigFile renders cfg through DefaultConfigTemplate to path,
// creating the parent directory.
func WriteConfigFile(path string, cfg Config) error {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// SetValue updates a single key of the config file at path. Unknown keys
// are rejected; numeric keys keep their type.
func SetValue(path, key, value string) error {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "failed to load %s: %s", path, err)
	}
	if !tree.Has(key) {
		return errorsmod.Wrapf(types.ErrInvalidConfig, "unknown config key %q", key)
	}

	var v any = value
	switch key {
	case KeyGas:
		if v, err = cast.ToInt64E(value); err != nil {
			return errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %s", key, err)
		}
	case KeyGasAdjustment:
		if v, err = cast.ToFloat64E(value); err != nil {
			return errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %s", key, err)
		}
	}
	tree.Set(key, v)

	bz, err := tree.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0o600)
}

// DefaultConfigTemplate is the template of the client config file.
const DefaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

###############################################################################
###                           Client Configuration                          ###
###############################################################################

# CometBFT rpc endpoint of the node
node = "{{ .Node }}"

# Optional gRPC endpoint used for queries instead of the rpc endpoint
grpc-addr = "{{ .GRPCAddr }}"

# Chain the transactions are signed for
chain-id = "{{ .ChainID }}"

# mainnet or testnet
network = "{{ .Network }}"

# Default gas limit of a transaction
gas = {{ .Gas }}

# Default fee of a transaction, e.g. "500uatom". Empty pays no fee.
fee = "{{ .Fee }}"

# Multiplier applied to simulated gas
gas-adjustment = {{ .GasAdjustment }}

# Transport timeout
timeout = "{{ .Timeout }}"

# Account address prefix; the other bech32 prefixes are derived from it
bech32-prefix = "{{ .Bech32Prefix }}"

# Output format of the CLI: json or yaml
output = "{{ .Output }}"
`
