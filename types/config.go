package types

import (
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Network is the gaia network the client talks to.
type Network int

const (
	Mainnet Network = iota
	Testnet
)

// String implements fmt.Stringer.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// ChainID returns the chain-id of the public gaia chain of the network.
func (n Network) ChainID() string {
	switch n {
	case Mainnet:
		return MainnetChainID
	case Testnet:
		return TestnetChainID
	default:
		return ""
	}
}

// NetworkFromString parses "mainnet" or "testnet".
func NetworkFromString(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	default:
		return Mainnet, errorsmod.Wrapf(ErrInvalidConfig, "unknown network %q", s)
	}
}

const (
	MainnetChainID = "cosmoshub-4"
	TestnetChainID = "theta-testnet-001"
)

const (
	// DefaultAccountAddressPrefix is the bech32 prefix of gaia account addresses.
	DefaultAccountAddressPrefix = "cosmos"

	// DefaultGas is the gas limit used when BaseTx does not set one.
	DefaultGas = uint64(200_000)

	// DefaultGasAdjustment is applied to simulated gas.
	DefaultGasAdjustment = 1.5

	// DefaultTimeout is the transport timeout.
	DefaultTimeout = 10 * time.Second
)

// Bech32Prefix holds the human readable prefixes of the six address classes.
type Bech32Prefix struct {
	AccAddr  string `mapstructure:"acc-addr" toml:"acc-addr" json:"acc_addr"`
	AccPub   string `mapstructure:"acc-pub" toml:"acc-pub" json:"acc_pub"`
	ValAddr  string `mapstructure:"val-addr" toml:"val-addr" json:"val_addr"`
	ValPub   string `mapstructure:"val-pub" toml:"val-pub" json:"val_pub"`
	ConsAddr string `mapstructure:"cons-addr" toml:"cons-addr" json:"cons_addr"`
	ConsPub  string `mapstructure:"cons-pub" toml:"cons-pub" json:"cons_pub"`
}

// NewBech32Prefix derives the prefix table from an account address prefix,
// following the SDK convention (cosmos, cosmospub, cosmosvaloper, ...).
func NewBech32Prefix(accountAddressPrefix string) Bech32Prefix {
	return Bech32Prefix{
		AccAddr:  accountAddressPrefix,
		AccPub:   accountAddressPrefix + "pub",
		ValAddr:  accountAddressPrefix + "valoper",
		ValPub:   accountAddressPrefix + "valoperpub",
		ConsAddr: accountAddressPrefix + "valcons",
		ConsPub:  accountAddressPrefix + "valconspub",
	}
}

// Validate checks that every prefix is set.
func (p Bech32Prefix) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"acc-addr", p.AccAddr},
		{"acc-pub", p.AccPub},
		{"val-addr", p.ValAddr},
		{"val-pub", p.ValPub},
		{"cons-addr", p.ConsAddr},
		{"cons-pub", p.ConsPub},
	} {
		if f.value == "" {
			return errorsmod.Wrapf(ErrInvalidConfig, "empty bech32 prefix %s", f.name)
		}
	}

	return nil
}

// ClientConfig is the immutable configuration shared by every component of
// the client. Use the With* methods to derive a modified copy.
type ClientConfig struct {
	// Node is the CometBFT rpc address, e.g. http://localhost:26657.
	Node string
	// GRPCAddr is an optional gRPC endpoint used for queries.
	GRPCAddr string
	// Network does not change how the client signs or talks to the node.
	// The config file loader derives a missing ChainID from it.
	Network Network
	ChainID string
	// Gas is the default gas limit.
	Gas uint64
	// Fee is the default fee.
	Fee           sdk.Coin
	GasAdjustment float64
	Bech32Prefix  Bech32Prefix
	Timeout       time.Duration
}

// DefaultClientConfig returns a config for a gaia mainnet node. Node and
// ChainID still have to be set.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Network:       Mainnet,
		Gas:           DefaultGas,
		Fee:           sdk.Coin{Denom: "uatom", Amount: math.ZeroInt()},
		GasAdjustment: DefaultGasAdjustment,
		Bech32Prefix:  NewBech32Prefix(DefaultAccountAddressPrefix),
		Timeout:       DefaultTimeout,
	}
}

func (c ClientConfig) WithNode(node string) ClientConfig {
	c.Node = node
	return c
}

func (c ClientConfig) WithGRPCAddr(addr string) ClientConfig {
	c.GRPCAddr = addr
	return c
}

func (c ClientConfig) WithNetwork(network Network) ClientConfig {
	c.Network = network
	return c
}

func (c ClientConfig) WithChainID(chainID string) ClientConfig {
	c.ChainID = chainID
	return c
}

func (c ClientConfig) WithGas(gas uint64) ClientConfig {
	c.Gas = gas
	return c
}

func (c ClientConfig) WithFee(fee sdk.Coin) ClientConfig {
	c.Fee = fee
	return c
}

func (c ClientConfig) WithGasAdjustment(adj float64) ClientConfig {
	c.GasAdjustment = adj
	return c
}

func (c ClientConfig) WithBech32Prefix(prefix Bech32Prefix) ClientConfig {
	c.Bech32Prefix = prefix
	return c
}

func (c ClientConfig) WithTimeout(timeout time.Duration) ClientConfig {
	c.Timeout = timeout
	return c
}

// Validate returns an error if the config cannot be used to build a client.
func (c ClientConfig) Validate() error {
	if c.Node == "" && c.GRPCAddr == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "node address is required")
	}
	if c.ChainID == "" {
		return errorsmod.Wrap(ErrInvalidConfig, "chain-id is required")
	}
	if c.Gas == 0 {
		return errorsmod.Wrap(ErrInvalidConfig, "gas must be positive")
	}
	if c.GasAdjustment < 1 {
		return errorsmod.Wrapf(ErrInvalidConfig, "gas adjustment must be >= 1, got %v", c.GasAdjustment)
	}
	if c.Fee.Denom != "" || !c.Fee.Amount.IsNil() {
		if err := ValidateCoin(c.Fee); err != nil {
			return errorsmod.Wrapf(ErrInvalidConfig, "fee: %s", err)
		}
	}

	return c.Bech32Prefix.Validate()
}
