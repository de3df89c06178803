package client

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Staking delegates stake and queries the staking module.
type Staking struct {
	c *Client
}

func (s Staking) Delegate(ctx context.Context, validator string, amount sdk.Coin, baseTx types.BaseTx) (*rpc.TxResult, error) {
	delegator, err := s.prepare(validator, amount, baseTx)
	if err != nil {
		return nil, err
	}

	return s.c.send(ctx, baseTx, &stakingtypes.MsgDelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	})
}

func (s Staking) Undelegate(ctx context.Context, validator string, amount sdk.Coin, baseTx types.BaseTx) (*rpc.TxResult, error) {
	delegator, err := s.prepare(validator, amount, baseTx)
	if err != nil {
		return nil, err
	}

	return s.c.send(ctx, baseTx, &stakingtypes.MsgUndelegate{
		DelegatorAddress: delegator,
		ValidatorAddress: validator,
		Amount:           amount,
	})
}

// Redelegate moves amount of stake from srcValidator to dstValidator.
func (s Staking) Redelegate(ctx context.Context, srcValidator, dstValidator string, amount sdk.Coin, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if err := s.c.validateValAddress(dstValidator); err != nil {
		return nil, err
	}
	if srcValidator == dstValidator {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "source and destination validator are the same")
	}

	delegator, err := s.prepare(srcValidator, amount, baseTx)
	if err != nil {
		return nil, err
	}

	return s.c.send(ctx, baseTx, &stakingtypes.MsgBeginRedelegate{
		DelegatorAddress:    delegator,
		ValidatorSrcAddress: srcValidator,
		ValidatorDstAddress: dstValidator,
		Amount:              amount,
	})
}

func (s Staking) prepare(validator string, amount sdk.Coin, baseTx types.BaseTx) (string, error) {
	if err := s.c.validateValAddress(validator); err != nil {
		return "", err
	}
	if err := validateAmount(sdk.Coins{amount}); err != nil {
		return "", err
	}

	return s.c.senderAddress(baseTx.From)
}

func (s Staking) QueryDelegation(ctx context.Context, delegator, validator string) (*stakingtypes.DelegationResponse, error) {
	var resp stakingtypes.QueryDelegationResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/Delegation", &stakingtypes.QueryDelegationRequest{
		DelegatorAddr: delegator,
		ValidatorAddr: validator,
	}, &resp); err != nil {
		return nil, err
	}

	return resp.DelegationResponse, nil
}

// QueryDelegations returns every delegation of delegator.
func (s Staking) QueryDelegations(ctx context.Context, delegator string, page *query.PageRequest) (stakingtypes.DelegationResponses, error) {
	var resp stakingtypes.QueryDelegatorDelegationsResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/DelegatorDelegations", &stakingtypes.QueryDelegatorDelegationsRequest{
		DelegatorAddr: delegator,
		Pagination:    page,
	}, &resp); err != nil {
		return nil, err
	}

	return resp.DelegationResponses, nil
}

func (s Staking) QueryUnbondingDelegation(ctx context.Context, delegator, validator string) (stakingtypes.UnbondingDelegation, error) {
	var resp stakingtypes.QueryUnbondingDelegationResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/UnbondingDelegation", &stakingtypes.QueryUnbondingDelegationRequest{
		DelegatorAddr: delegator,
		ValidatorAddr: validator,
	}, &resp); err != nil {
		return stakingtypes.UnbondingDelegation{}, err
	}

	return resp.Unbond, nil
}

func (s Staking) QueryValidator(ctx context.Context, validator string) (stakingtypes.Validator, error) {
	var resp stakingtypes.QueryValidatorResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/Validator",
		&stakingtypes.QueryValidatorRequest{ValidatorAddr: validator}, &resp); err != nil {
		return stakingtypes.Validator{}, err
	}

	return resp.Validator, nil
}

// QueryValidators lists validators, optionally filtered by bond status
// (e.g. BOND_STATUS_BONDED).
func (s Staking) QueryValidators(ctx context.Context, status string, page *query.PageRequest) ([]stakingtypes.Validator, error) {
	var resp stakingtypes.QueryValidatorsResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/Validators",
		&stakingtypes.QueryValidatorsRequest{Status: status, Pagination: page}, &resp); err != nil {
		return nil, err
	}

	return resp.Validators, nil
}

func (s Staking) QueryPool(ctx context.Context) (stakingtypes.Pool, error) {
	var resp stakingtypes.QueryPoolResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/Pool", &stakingtypes.QueryPoolRequest{}, &resp); err != nil {
		return stakingtypes.Pool{}, err
	}

	return resp.Pool, nil
}

func (s Staking) QueryParams(ctx context.Context) (stakingtypes.Params, error) {
	var resp stakingtypes.QueryParamsResponse
	if err := s.c.querier.Query(ctx, "/cosmos.staking.v1beta1.Query/Params", &stakingtypes.QueryParamsRequest{}, &resp); err != nil {
		return stakingtypes.Params{}, err
	}

	return resp.Params, nil
}
