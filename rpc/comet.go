package rpc

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"cosmossdk.io/log"
	errorsmod "cosmossdk.io/errors"
	metrics "github.com/hashicorp/go-metrics"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// cometRPC is the part of the CometBFT rpc client CometClient uses.
type cometRPC interface {
	NodeClient

	ABCIQueryWithOptions(ctx context.Context, path string, data cmtbytes.HexBytes, opts rpcclient.ABCIQueryOptions) (*coretypes.ResultABCIQuery, error)
	BroadcastTxAsync(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTx, error)
	BroadcastTxSync(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTx, error)
	BroadcastTxCommit(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTxCommit, error)
}

var (
	_ Querier     = (*CometClient)(nil)
	_ Broadcaster = (*CometClient)(nil)
	_ NodeClient  = (*CometClient)(nil)
)

// CometClient talks to a node over CometBFT JSON-RPC.
type CometClient struct {
	cometRPC

	logger log.Logger
}

// NewCometClient connects to the rpc endpoint at node, e.g.
// tcp://localhost:26657.
func NewCometClient(node string, logger log.Logger) (*CometClient, error) {
	rpc, err := client.NewClientFromNode(node)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "invalid node address %s: %s", node, err)
	}

	return newCometClient(rpc, logger), nil
}

func newCometClient(rpc cometRPC, logger log.Logger) *CometClient {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &CometClient{cometRPC: rpc, logger: logger.With("module", "rpc")}
}

// Query runs an ABCI query. The height is taken from the context, see
// WithHeight.
func (c *CometClient) Query(ctx context.Context, path string, req, resp proto.Message) error {
	defer metrics.MeasureSinceWithLabels([]string{"gaiasdk", "query"}, time.Now(), []metrics.Label{
		{Name: "path", Value: path},
	})

	reqBz, err := proto.Marshal(req)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidArgument, "failed to encode query request: %s", err)
	}

	opts := rpcclient.ABCIQueryOptions{}
	if h, ok := HeightFromContext(ctx); ok {
		opts.Height = h
	}

	c.logger.Debug("abci query", "path", path, "height", opts.Height)

	res, err := c.ABCIQueryWithOptions(ctx, path, reqBz, opts)
	if err != nil {
		return err
	}
	if res.Response.Code != 0 {
		return errorsmod.Wrapf(types.ErrQueryFailed, "%s: codespace %s, code %d: %s",
			path, res.Response.Codespace, res.Response.Code, res.Response.Log)
	}

	if err := proto.Unmarshal(res.Response.Value, resp); err != nil {
		return errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode %s response: %s", path, err)
	}

	return nil
}

// Broadcast submits txBytes. A non-zero result code is returned together
// with the result as ErrTxFailed.
func (c *CometClient) Broadcast(ctx context.Context, txBytes []byte, mode types.BroadcastMode) (*TxResult, error) {
	if len(txBytes) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "tx bytes can not be empty")
	}

	result, err := c.broadcast(ctx, txBytes, mode)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.IncrCounterWithLabels([]string{"gaiasdk", "tx", "broadcast"}, 1, []metrics.Label{
		{Name: "mode", Value: mode.String()},
		{Name: "result", Value: status},
	})

	if err != nil {
		return result, err
	}

	c.logger.Debug("broadcast tx", "hash", result.Hash, "mode", mode.String(), "height", result.Height)
	return result, nil
}

func (c *CometClient) broadcast(ctx context.Context, txBytes []byte, mode types.BroadcastMode) (*TxResult, error) {
	switch mode {
	case types.BroadcastAsync, types.BroadcastSync:
		broadcastFn := c.BroadcastTxSync
		if mode == types.BroadcastAsync {
			broadcastFn = c.BroadcastTxAsync
		}

		res, err := broadcastFn(ctx, txBytes)
		if err != nil {
			return nil, err
		}

		result := &TxResult{
			Hash:      res.Hash.String(),
			Code:      res.Code,
			Codespace: res.Codespace,
			Log:       res.Log,
			Data:      res.Data,
		}
		return result, checkCode(result)

	case types.BroadcastCommit:
		res, err := c.BroadcastTxCommit(ctx, txBytes)
		if err != nil {
			return nil, err
		}

		result := &TxResult{
			Hash:      res.Hash.String(),
			Height:    res.Height,
			Code:      res.CheckTx.Code,
			Codespace: res.CheckTx.Codespace,
			Log:       res.CheckTx.Log,
			GasWanted: res.CheckTx.GasWanted,
			GasUsed:   res.CheckTx.GasUsed,
			Events:    res.CheckTx.Events,
		}
		if result.Code == 0 {
			result.Code = res.TxResult.Code
			result.Codespace = res.TxResult.Codespace
			result.Log = res.TxResult.Log
			result.GasWanted = res.TxResult.GasWanted
			result.GasUsed = res.TxResult.GasUsed
			result.Data = res.TxResult.Data
			result.Events = res.TxResult.Events
		}
		return result, checkCode(result)

	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "unknown broadcast mode %d", mode)
	}
}

func checkCode(result *TxResult) error {
	if result.Code == 0 {
		return nil
	}

	return errorsmod.Wrapf(types.ErrTxFailed, "tx %s failed: codespace %s, code %d: %s",
		result.Hash, result.Codespace, result.Code, result.Log)
}

// WaitForTx polls the node every interval until the tx with the given hex
// hash is committed or ctx is done.
func (c *CometClient) WaitForTx(ctx context.Context, hash string, interval time.Duration) (*coretypes.ResultTx, error) {
	hashBz, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(hash), "0x"))
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid tx hash %s", hash)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := c.Tx(ctx, hashBz, false)
		if err == nil {
			if res.TxResult.Code != 0 {
				return res, errorsmod.Wrapf(types.ErrTxFailed, "tx %s failed: code %d: %s", hash, res.TxResult.Code, res.TxResult.Log)
			}
			return res, nil
		}
		c.logger.Debug("tx not found yet", "hash", hash, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
