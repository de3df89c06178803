package client

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/initia-labs/gaia-sdk-go/types"
)

const baseAccountTypeURL = "/cosmos.auth.v1beta1.BaseAccount"

// Auth queries the auth module.
type Auth struct {
	c *Client
}

// QueryAccount returns the account at address.
func (a Auth) QueryAccount(ctx context.Context, address string) (sdk.AccountI, error) {
	if err := a.c.validateAccAddress(address); err != nil {
		return nil, err
	}

	var resp authtypes.QueryAccountResponse
	if err := a.c.querier.Query(ctx, "/cosmos.auth.v1beta1.Query/Account",
		&authtypes.QueryAccountRequest{Address: address}, &resp); err != nil {
		return nil, err
	}
	if resp.Account == nil {
		return nil, errorsmod.Wrapf(types.ErrQueryFailed, "account %s not found", address)
	}

	// base accounts are decoded without unpacking the public key, so that
	// accounts holding key types unknown to the interface registry load.
	if resp.Account.TypeUrl == baseAccountTypeURL {
		var acc authtypes.BaseAccount
		if err := proto.Unmarshal(resp.Account.Value, &acc); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode account: %s", err)
		}
		return &acc, nil
	}

	var acc sdk.AccountI
	if err := a.c.encoding.InterfaceRegistry.UnpackAny(resp.Account, &acc); err != nil {
		return nil, errorsmod.Wrapf(types.ErrUnsupportedType, "account type %s: %s", resp.Account.TypeUrl, err)
	}

	return acc, nil
}

func (a Auth) QueryParams(ctx context.Context) (authtypes.Params, error) {
	var resp authtypes.QueryParamsResponse
	if err := a.c.querier.Query(ctx, "/cosmos.auth.v1beta1.Query/Params", &authtypes.QueryParamsRequest{}, &resp); err != nil {
		return authtypes.Params{}, err
	}

	return resp.Params, nil
}
