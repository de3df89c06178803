package client

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Bank sends coins and queries balances.
type Bank struct {
	c *Client
}

// Send transfers amount from baseTx.From to to.
func (b Bank) Send(ctx context.Context, to string, amount sdk.Coins, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if err := b.c.validateAccAddress(to); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	from, err := b.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return b.c.send(ctx, baseTx, &banktypes.MsgSend{
		FromAddress: from,
		ToAddress:   to,
		Amount:      sdk.NewCoins(amount...),
	})
}

// MultiSend pays every output from baseTx.From in a single message.
func (b Bank) MultiSend(ctx context.Context, outputs []banktypes.Output, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if len(outputs) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "at least one output is required")
	}

	normalized := make([]banktypes.Output, len(outputs))
	total := sdk.NewCoins()
	for i, out := range outputs {
		if err := b.c.validateAccAddress(out.Address); err != nil {
			return nil, err
		}
		if err := validateAmount(out.Coins); err != nil {
			return nil, err
		}

		normalized[i] = banktypes.Output{Address: out.Address, Coins: sdk.NewCoins(out.Coins...)}
		total = total.Add(normalized[i].Coins...)
	}

	from, err := b.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return b.c.send(ctx, baseTx, &banktypes.MsgMultiSend{
		Inputs:  []banktypes.Input{{Address: from, Coins: total}},
		Outputs: normalized,
	})
}

func (b Bank) QueryBalance(ctx context.Context, address, denom string) (sdk.Coin, error) {
	if err := b.c.validateAccAddress(address); err != nil {
		return sdk.Coin{}, err
	}

	var resp banktypes.QueryBalanceResponse
	if err := b.c.querier.Query(ctx, "/cosmos.bank.v1beta1.Query/Balance",
		&banktypes.QueryBalanceRequest{Address: address, Denom: denom}, &resp); err != nil {
		return sdk.Coin{}, err
	}
	if resp.Balance == nil {
		return sdk.NewInt64Coin(denom, 0), nil
	}

	return *resp.Balance, nil
}

func (b Bank) QueryAllBalances(ctx context.Context, address string, page *query.PageRequest) (sdk.Coins, error) {
	if err := b.c.validateAccAddress(address); err != nil {
		return nil, err
	}

	var resp banktypes.QueryAllBalancesResponse
	if err := b.c.querier.Query(ctx, "/cosmos.bank.v1beta1.Query/AllBalances",
		&banktypes.QueryAllBalancesRequest{Address: address, Pagination: page}, &resp); err != nil {
		return nil, err
	}

	return resp.Balances, nil
}

func (b Bank) QueryTotalSupply(ctx context.Context, page *query.PageRequest) (sdk.Coins, error) {
	var resp banktypes.QueryTotalSupplyResponse
	if err := b.c.querier.Query(ctx, "/cosmos.bank.v1beta1.Query/TotalSupply",
		&banktypes.QueryTotalSupplyRequest{Pagination: page}, &resp); err != nil {
		return nil, err
	}

	return resp.Supply, nil
}

func (b Bank) QuerySupplyOf(ctx context.Context, denom string) (sdk.Coin, error) {
	var resp banktypes.QuerySupplyOfResponse
	if err := b.c.querier.Query(ctx, "/cosmos.bank.v1beta1.Query/SupplyOf",
		&banktypes.QuerySupplyOfRequest{Denom: denom}, &resp); err != nil {
		return sdk.Coin{}, err
	}

	return resp.Amount, nil
}

func (b Bank) QueryParams(ctx context.Context) (banktypes.Params, error) {
	var resp banktypes.QueryParamsResponse
	if err := b.c.querier.Query(ctx, "/cosmos.bank.v1beta1.Query/Params", &banktypes.QueryParamsRequest{}, &resp); err != nil {
		return banktypes.Params{}, err
	}

	return resp.Params, nil
}

// validateAmount requires a non-empty, positive coin list.
func validateAmount(amount sdk.Coins) error {
	if len(amount) == 0 {
		return errorsmod.Wrap(types.ErrInvalidArgument, "amount can not be empty")
	}
	if err := types.ValidateCoins(amount); err != nil {
		return err
	}
	for _, coin := range amount {
		if !coin.Amount.IsPositive() {
			return errorsmod.Wrapf(types.ErrInvalidArgument, "amount of %s must be positive", coin.Denom)
		}
	}

	return nil
}
