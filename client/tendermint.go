package client

import (
	"context"
	"encoding/hex"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/sync/errgroup"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/initia-labs/gaia-sdk-go/codec"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Tendermint reads blocks and transactions from the node.
type Tendermint struct {
	c *Client
}

// Block is a block with its transactions decoded, in block order.
type Block struct {
	*coretypes.ResultBlock
	Txs []*codec.DecodedTx
}

// TxInfo is a committed transaction.
type TxInfo struct {
	Hash   string
	Height int64
	Index  uint32
	Result abci.ExecTxResult
	Tx     *codec.DecodedTx
}

// SearchTxsResult is one page of a tx search.
type SearchTxsResult struct {
	Total int
	Txs   []*TxInfo
}

// QueryBlock returns the block at height, the latest one when height is
// not positive.
func (t Tendermint) QueryBlock(ctx context.Context, height int64) (*Block, error) {
	res, err := t.c.node.Block(ctx, heightPtr(height))
	if err != nil {
		return nil, err
	}
	if res.Block == nil {
		return nil, errorsmod.Wrapf(types.ErrQueryFailed, "block %d not found", height)
	}

	txs, err := t.decodeTxs(ctx, res.Block.Data.Txs)
	if err != nil {
		return nil, err
	}

	return &Block{ResultBlock: res, Txs: txs}, nil
}

func (t Tendermint) QueryBlockResult(ctx context.Context, height int64) (*coretypes.ResultBlockResults, error) {
	return t.c.node.BlockResults(ctx, heightPtr(height))
}

// QueryTx returns the transaction with the given hex hash.
func (t Tendermint) QueryTx(ctx context.Context, hash string) (*TxInfo, error) {
	hashBz, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(hash), "0x"))
	if err != nil || len(hashBz) == 0 {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid tx hash %q", hash)
	}

	res, err := t.c.node.Tx(ctx, hashBz, false)
	if err != nil {
		return nil, err
	}

	return t.txInfo(res)
}

// SearchTxs returns the transactions matching the events of query. Pages
// start at 1.
func (t Tendermint) SearchTxs(ctx context.Context, query *types.EventQueryBuilder, page, perPage int) (*SearchTxsResult, error) {
	if query == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "event query can not be nil")
	}

	q := query.Build()
	if q == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "event query can not be empty")
	}

	res, err := t.c.node.TxSearch(ctx, q, false, intPtr(page), intPtr(perPage), "asc")
	if err != nil {
		return nil, err
	}

	txs := make([]*TxInfo, len(res.Txs))
	g, _ := errgroup.WithContext(ctx)
	for i, r := range res.Txs {
		i, r := i, r
		g.Go(func() error {
			info, err := t.txInfo(r)
			if err != nil {
				return err
			}
			txs[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SearchTxsResult{Total: res.TotalCount, Txs: txs}, nil
}

// QueryValidators returns the validator set at height, the latest one when
// height is not positive.
func (t Tendermint) QueryValidators(ctx context.Context, height int64, page, perPage int) (*coretypes.ResultValidators, error) {
	return t.c.node.Validators(ctx, heightPtr(height), intPtr(page), intPtr(perPage))
}

func (t Tendermint) QueryNetInfo(ctx context.Context) (*coretypes.ResultNetInfo, error) {
	return t.c.node.NetInfo(ctx)
}

func (t Tendermint) QueryStatus(ctx context.Context) (*coretypes.ResultStatus, error) {
	return t.c.node.Status(ctx)
}

func (t Tendermint) txInfo(res *coretypes.ResultTx) (*TxInfo, error) {
	decoded, err := t.c.encoding.TxDecoder.DecodeTx(res.Tx, true)
	if err != nil {
		return nil, errorsmod.Wrapf(err, "tx %s", res.Hash)
	}

	return &TxInfo{
		Hash:   res.Hash.String(),
		Height: res.Height,
		Index:  res.Index,
		Result: res.TxResult,
		Tx:     decoded,
	}, nil
}

// decodeTxs decodes every tx of a block concurrently, keeping block order.
func (t Tendermint) decodeTxs(ctx context.Context, txs cmttypes.Txs) ([]*codec.DecodedTx, error) {
	out := make([]*codec.DecodedTx, len(txs))

	g, _ := errgroup.WithContext(ctx)
	for i, tx := range txs {
		i, tx := i, tx
		g.Go(func() error {
			decoded, err := t.c.encoding.TxDecoder.DecodeTx(tx, true)
			if err != nil {
				return errorsmod.Wrapf(err, "tx %d", i)
			}
			out[i] = decoded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func heightPtr(height int64) *int64 {
	if height <= 0 {
		return nil
	}

	return &height
}

func intPtr(v int) *int {
	if v <= 0 {
		return nil
	}

	return &v
}
