package client

import (
	"cosmossdk.io/log"
	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/gaia-sdk-go/crypto/keyring"
	"github.com/initia-labs/gaia-sdk-go/params"
	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/tx"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Client is the entry point of the SDK. It is immutable: the With* methods
// return a modified copy and leave the receiver untouched.
type Client struct {
	cfg      types.ClientConfig
	logger   log.Logger
	encoding params.EncodingConfig
	builder  *tx.Builder
	keystore *keyring.Keystore

	querier     rpc.Querier
	broadcaster rpc.Broadcaster
	node        rpc.NodeClient
}

// Option configures a Client at construction.
type Option func(*Client)

// WithKeyDAO installs the host key storage. Encrypt and Decrypt fall back
// to the defaults when dao does not implement them.
func WithKeyDAO(dao keyring.KeyDAO) Option {
	return func(c *Client) {
		c.keystore = keyring.NewKeystore(dao)
	}
}

func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithQuerier overrides the transport used for state queries.
func WithQuerier(q rpc.Querier) Option {
	return func(c *Client) {
		c.querier = q
	}
}

// WithBroadcaster overrides the transport used to submit transactions.
func WithBroadcaster(b rpc.Broadcaster) Option {
	return func(c *Client) {
		c.broadcaster = b
	}
}

// WithNodeClient overrides the transport used for block and tx lookups.
func WithNodeClient(n rpc.NodeClient) Option {
	return func(c *Client) {
		c.node = n
	}
}

// NewClient validates cfg and builds a client. Transports not supplied by
// options are served by a CometBFT rpc client on cfg.Node, queries by a
// gRPC client when cfg.GRPCAddr is set.
func NewClient(cfg types.ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.keystore == nil {
		c.keystore = keyring.NewKeystore(nil)
	}
	c.logger = c.logger.With("module", "gaiasdk")
	c.encoding = params.MakeEncodingConfig(cfg.Bech32Prefix)
	c.builder = tx.NewBuilder(c.encoding.Resolver)

	if c.querier == nil && cfg.GRPCAddr != "" {
		q, err := rpc.NewGRPCQuerier(cfg.GRPCAddr, c.encoding.Codec, c.logger)
		if err != nil {
			return nil, err
		}
		c.querier = q
	}

	if c.querier == nil || c.broadcaster == nil || c.node == nil {
		if cfg.Node == "" {
			return nil, errorsmod.Wrap(types.ErrInvalidConfig, "node address is required")
		}

		comet, err := rpc.NewCometClient(cfg.Node, c.logger)
		if err != nil {
			return nil, err
		}

		if c.querier == nil {
			c.querier = comet
		}
		if c.broadcaster == nil {
			c.broadcaster = comet
		}
		if c.node == nil {
			c.node = comet
		}
	}

	return c, nil
}

// Config returns the configuration of c.
func (c *Client) Config() types.ClientConfig {
	return c.cfg
}

func (c *Client) Encoding() params.EncodingConfig {
	return c.encoding
}

func (c *Client) Logger() log.Logger {
	return c.logger
}

func (c *Client) with(fn func(cfg types.ClientConfig) types.ClientConfig) *Client {
	cp := *c
	cp.cfg = fn(c.cfg)
	return &cp
}

func (c *Client) WithChainID(chainID string) *Client {
	return c.with(func(cfg types.ClientConfig) types.ClientConfig { return cfg.WithChainID(chainID) })
}

func (c *Client) WithNetwork(network types.Network) *Client {
	return c.with(func(cfg types.ClientConfig) types.ClientConfig { return cfg.WithNetwork(network) })
}

func (c *Client) WithGas(gas uint64) *Client {
	return c.with(func(cfg types.ClientConfig) types.ClientConfig { return cfg.WithGas(gas) })
}

func (c *Client) WithFee(fee sdk.Coin) *Client {
	return c.with(func(cfg types.ClientConfig) types.ClientConfig { return cfg.WithFee(fee) })
}

func (c *Client) WithGasAdjustment(adj float64) *Client {
	return c.with(func(cfg types.ClientConfig) types.ClientConfig { return cfg.WithGasAdjustment(adj) })
}

// WithKeyDAO returns a copy of c that stores keys in dao.
func (c *Client) WithKeyDAO(dao keyring.KeyDAO) *Client {
	cp := *c
	cp.keystore = keyring.NewKeystore(dao)
	return &cp
}

func (c *Client) Auth() Auth                 { return Auth{c} }
func (c *Client) Bank() Bank                 { return Bank{c} }
func (c *Client) Staking() Staking           { return Staking{c} }
func (c *Client) Distribution() Distribution { return Distribution{c} }
func (c *Client) Gov() Gov                   { return Gov{c} }
func (c *Client) Slashing() Slashing         { return Slashing{c} }
func (c *Client) Tendermint() Tendermint     { return Tendermint{c} }
func (c *Client) Tx() Tx                     { return Tx{c} }
func (c *Client) Keys() Keys                 { return Keys{c} }
func (c *Client) Protobuf() Protobuf         { return Protobuf{c} }
