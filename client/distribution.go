package client

import (
	"context"

	"github.com/cosmos/gogoproto/proto"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"

	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Distribution withdraws rewards and queries the distribution module.
type Distribution struct {
	c *Client
}

// WithdrawRewards withdraws the delegation rewards of baseTx.From from
// validator, or from every validator it delegates to when validator is
// empty.
func (d Distribution) WithdrawRewards(ctx context.Context, validator string, baseTx types.BaseTx) (*rpc.TxResult, error) {
	delegator, err := d.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	validators := []string{validator}
	if validator == "" {
		validators, err = d.QueryDelegatorValidators(ctx, delegator)
		if err != nil {
			return nil, err
		}
	}

	msgs := make([]proto.Message, 0, len(validators))
	for _, val := range validators {
		if err := d.c.validateValAddress(val); err != nil {
			return nil, err
		}
		msgs = append(msgs, &distrtypes.MsgWithdrawDelegatorReward{
			DelegatorAddress: delegator,
			ValidatorAddress: val,
		})
	}

	return d.c.Tx().BuildAndSend(ctx, msgs, baseTx)
}

func (d Distribution) SetWithdrawAddr(ctx context.Context, withdrawAddr string, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if err := d.c.validateAccAddress(withdrawAddr); err != nil {
		return nil, err
	}

	delegator, err := d.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return d.c.send(ctx, baseTx, &distrtypes.MsgSetWithdrawAddress{
		DelegatorAddress: delegator,
		WithdrawAddress:  withdrawAddr,
	})
}

// WithdrawValidatorCommission withdraws the commission of the validator
// operated by baseTx.From.
func (d Distribution) WithdrawValidatorCommission(ctx context.Context, baseTx types.BaseTx) (*rpc.TxResult, error) {
	operator, err := d.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	validator, err := convertAddress(operator, d.c.cfg.Bech32Prefix.ValAddr)
	if err != nil {
		return nil, err
	}

	return d.c.send(ctx, baseTx, &distrtypes.MsgWithdrawValidatorCommission{ValidatorAddress: validator})
}

func (d Distribution) FundCommunityPool(ctx context.Context, amount sdk.Coins, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	depositor, err := d.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return d.c.send(ctx, baseTx, &distrtypes.MsgFundCommunityPool{
		Amount:    sdk.NewCoins(amount...),
		Depositor: depositor,
	})
}

func (d Distribution) QueryParams(ctx context.Context) (distrtypes.Params, error) {
	var resp distrtypes.QueryParamsResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/Params", &distrtypes.QueryParamsRequest{}, &resp); err != nil {
		return distrtypes.Params{}, err
	}

	return resp.Params, nil
}

func (d Distribution) QueryValidatorOutstandingRewards(ctx context.Context, validator string) (sdk.DecCoins, error) {
	var resp distrtypes.QueryValidatorOutstandingRewardsResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/ValidatorOutstandingRewards",
		&distrtypes.QueryValidatorOutstandingRewardsRequest{ValidatorAddress: validator}, &resp); err != nil {
		return nil, err
	}

	return resp.Rewards.Rewards, nil
}

func (d Distribution) QueryValidatorCommission(ctx context.Context, validator string) (sdk.DecCoins, error) {
	var resp distrtypes.QueryValidatorCommissionResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/ValidatorCommission",
		&distrtypes.QueryValidatorCommissionRequest{ValidatorAddress: validator}, &resp); err != nil {
		return nil, err
	}

	return resp.Commission.Commission, nil
}

// QueryValidatorSlashes returns the slash events of validator between the
// two heights.
func (d Distribution) QueryValidatorSlashes(
	ctx context.Context,
	validator string,
	startHeight, endHeight uint64,
	page *query.PageRequest,
) ([]distrtypes.ValidatorSlashEvent, error) {
	var resp distrtypes.QueryValidatorSlashesResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/ValidatorSlashes", &distrtypes.QueryValidatorSlashesRequest{
		ValidatorAddress: validator,
		StartingHeight:   startHeight,
		EndingHeight:     endHeight,
		Pagination:       page,
	}, &resp); err != nil {
		return nil, err
	}

	return resp.Slashes, nil
}

func (d Distribution) QueryDelegationRewards(ctx context.Context, delegator, validator string) (sdk.DecCoins, error) {
	var resp distrtypes.QueryDelegationRewardsResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/DelegationRewards", &distrtypes.QueryDelegationRewardsRequest{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
	}, &resp); err != nil {
		return nil, err
	}

	return resp.Rewards, nil
}

func (d Distribution) QueryDelegationTotalRewards(ctx context.Context, delegator string) (*distrtypes.QueryDelegationTotalRewardsResponse, error) {
	var resp distrtypes.QueryDelegationTotalRewardsResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/DelegationTotalRewards",
		&distrtypes.QueryDelegationTotalRewardsRequest{DelegatorAddress: delegator}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// QueryDelegatorValidators returns the operator addresses delegator
// delegates to.
func (d Distribution) QueryDelegatorValidators(ctx context.Context, delegator string) ([]string, error) {
	var resp distrtypes.QueryDelegatorValidatorsResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/DelegatorValidators",
		&distrtypes.QueryDelegatorValidatorsRequest{DelegatorAddress: delegator}, &resp); err != nil {
		return nil, err
	}

	return resp.Validators, nil
}

func (d Distribution) QueryDelegatorWithdrawAddress(ctx context.Context, delegator string) (string, error) {
	var resp distrtypes.QueryDelegatorWithdrawAddressResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/DelegatorWithdrawAddress",
		&distrtypes.QueryDelegatorWithdrawAddressRequest{DelegatorAddress: delegator}, &resp); err != nil {
		return "", err
	}

	return resp.WithdrawAddress, nil
}

func (d Distribution) QueryCommunityPool(ctx context.Context) (sdk.DecCoins, error) {
	var resp distrtypes.QueryCommunityPoolResponse
	if err := d.c.querier.Query(ctx, "/cosmos.distribution.v1beta1.Query/CommunityPool", &distrtypes.QueryCommunityPoolRequest{}, &resp); err != nil {
		return nil, err
	}

	return resp.Pool, nil
}
