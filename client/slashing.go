package client

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"

	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Slashing unjails validators and queries signing infos.
type Slashing struct {
	c *Client
}

// Unjail unjails the validator operated by baseTx.From.
func (s Slashing) Unjail(ctx context.Context, baseTx types.BaseTx) (*rpc.TxResult, error) {
	operator, err := s.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	validator, err := convertAddress(operator, s.c.cfg.Bech32Prefix.ValAddr)
	if err != nil {
		return nil, err
	}

	return s.c.send(ctx, baseTx, &slashingtypes.MsgUnjail{ValidatorAddr: validator})
}

// QuerySigningInfo returns the signing info of a consensus address.
func (s Slashing) QuerySigningInfo(ctx context.Context, consAddress string) (slashingtypes.ValidatorSigningInfo, error) {
	if err := validateAddress(consAddress, s.c.cfg.Bech32Prefix.ConsAddr); err != nil {
		return slashingtypes.ValidatorSigningInfo{}, err
	}

	var resp slashingtypes.QuerySigningInfoResponse
	if err := s.c.querier.Query(ctx, "/cosmos.slashing.v1beta1.Query/SigningInfo",
		&slashingtypes.QuerySigningInfoRequest{ConsAddress: consAddress}, &resp); err != nil {
		return slashingtypes.ValidatorSigningInfo{}, err
	}

	return resp.ValSigningInfo, nil
}

func (s Slashing) QuerySigningInfos(ctx context.Context, page *query.PageRequest) ([]slashingtypes.ValidatorSigningInfo, error) {
	var resp slashingtypes.QuerySigningInfosResponse
	if err := s.c.querier.Query(ctx, "/cosmos.slashing.v1beta1.Query/SigningInfos",
		&slashingtypes.QuerySigningInfosRequest{Pagination: page}, &resp); err != nil {
		return nil, err
	}

	return resp.Info, nil
}

func (s Slashing) QueryParams(ctx context.Context) (slashingtypes.Params, error) {
	var resp slashingtypes.QueryParamsResponse
	if err := s.c.querier.Query(ctx, "/cosmos.slashing.v1beta1.Query/Params", &slashingtypes.QueryParamsRequest{}, &resp); err != nil {
		return slashingtypes.Params{}, err
	}

	return resp.Params, nil
}
