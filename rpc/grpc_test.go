package rpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	grpctypes "github.com/cosmos/cosmos-sdk/types/grpc"
)

func TestHeightMetadata(t *testing.T) {
	testCases := []struct {
		name   string
		ctx    context.Context
		expect []string
	}{
		{"no height", context.Background(), nil},
		{"zero height", WithHeight(context.Background(), 0), nil},
		{"height", WithHeight(context.Background(), 12), []string{"12"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			md, _ := metadata.FromOutgoingContext(heightMetadata(tc.ctx))
			require.Equal(t, tc.expect, md.Get(grpctypes.GRPCBlockHeightHeader))
		})
	}
}

func TestNewGRPCQuerier(t *testing.T) {
	cdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())

	q, err := NewGRPCQuerier("localhost:9090", cdc, nil)
	require.NoError(t, err)
	require.NoError(t, q.Close())
}
