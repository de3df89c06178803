package rpc

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/log"
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"
	metrics "github.com/hashicorp/go-metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/cosmos/cosmos-sdk/codec"
	grpctypes "github.com/cosmos/cosmos-sdk/types/grpc"

	"github.com/initia-labs/gaia-sdk-go/types"
)

var _ Querier = (*GRPCQuerier)(nil)

// GRPCQuerier runs queries against the gRPC endpoint of a node.
type GRPCQuerier struct {
	conn   *grpc.ClientConn
	logger log.Logger
}

// NewGRPCQuerier dials addr (host:port) without transport security.
func NewGRPCQuerier(addr string, cdc *codec.ProtoCodec, logger log.Logger) (*GRPCQuerier, error) {
	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(cdc.GRPCCodec())),
	)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "failed to connect to %s: %s", addr, err)
	}

	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &GRPCQuerier{conn: conn, logger: logger.With("module", "grpc")}, nil
}

// Query invokes the gRPC method path. The height is taken from the
// context, see WithHeight.
func (q *GRPCQuerier) Query(ctx context.Context, path string, req, resp proto.Message) error {
	defer metrics.MeasureSinceWithLabels([]string{"gaiasdk", "query"}, time.Now(), []metrics.Label{
		{Name: "path", Value: path},
	})

	ctx = heightMetadata(ctx)
	q.logger.Debug("grpc query", "path", path)

	if err := q.conn.Invoke(ctx, path, req, resp); err != nil {
		return errorsmod.Wrapf(types.ErrQueryFailed, "%s: %s", path, err)
	}

	return nil
}

func (q *GRPCQuerier) Close() error {
	return q.conn.Close()
}

func heightMetadata(ctx context.Context) context.Context {
	h, ok := HeightFromContext(ctx)
	if !ok {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx, grpctypes.GRPCBlockHeightHeader, strconv.FormatInt(h, 10))
}
