package rpc

import (
	"context"
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// Querier runs a gRPC style query, e.g. path
// "/cosmos.bank.v1beta1.Query/Balance", decoding the answer into resp.
type Querier interface {
	Query(ctx context.Context, path string, req, resp proto.Message) error
}

// Broadcaster submits signed transaction bytes.
type Broadcaster interface {
	Broadcast(ctx context.Context, txBytes []byte, mode types.BroadcastMode) (*TxResult, error)
}

// NodeClient reads blocks, transactions and node information.
type NodeClient interface {
	Block(ctx context.Context, height *int64) (*coretypes.ResultBlock, error)
	BlockResults(ctx context.Context, height *int64) (*coretypes.ResultBlockResults, error)
	Tx(ctx context.Context, hash []byte, prove bool) (*coretypes.ResultTx, error)
	TxSearch(ctx context.Context, query string, prove bool, page, perPage *int, orderBy string) (*coretypes.ResultTxSearch, error)
	Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error)
	NetInfo(ctx context.Context) (*coretypes.ResultNetInfo, error)
	Status(ctx context.Context) (*coretypes.ResultStatus, error)
}

// TxResult is the outcome of a broadcast. Height, GasWanted, GasUsed and
// Events are only known in commit mode.
type TxResult struct {
	Hash      string       `json:"hash" yaml:"hash"`
	Height    int64        `json:"height" yaml:"height"`
	Code      uint32       `json:"code" yaml:"code"`
	Codespace string       `json:"codespace,omitempty" yaml:"codespace,omitempty"`
	Log       string       `json:"log,omitempty" yaml:"log,omitempty"`
	GasWanted int64        `json:"gas_wanted" yaml:"gas_wanted"`
	GasUsed   int64        `json:"gas_used" yaml:"gas_used"`
	Data      []byte       `json:"data,omitempty" yaml:"data,omitempty"`
	Events    []abci.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

func (r *TxResult) String() string {
	return fmt.Sprintf("TxResult{hash=%s height=%d code=%d}", r.Hash, r.Height, r.Code)
}

type heightKey struct{}

// WithHeight makes queries issued with the returned context read state at
// height.
func WithHeight(ctx context.Context, height int64) context.Context {
	return context.WithValue(ctx, heightKey{}, height)
}

// HeightFromContext returns the height set by WithHeight.
func HeightFromContext(ctx context.Context) (int64, bool) {
	h, ok := ctx.Value(heightKey{}).(int64)
	return h, ok && h > 0
}
