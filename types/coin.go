package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NewCoin builds a coin from a decimal amount string. The amount must parse as
// a non-negative integer in the base unit of the denom.
func NewCoin(denom, amount string) (sdk.Coin, error) {
	amt, ok := math.NewIntFromString(strings.TrimSpace(amount))
	if !ok {
		return sdk.Coin{}, errorsmod.Wrapf(ErrInvalidArgument, "invalid coin amount %q", amount)
	}

	coin := sdk.Coin{Denom: denom, Amount: amt}
	if err := ValidateCoin(coin); err != nil {
		return sdk.Coin{}, err
	}

	return coin, nil
}

// ValidateCoin checks the coin invariants: non-empty valid denom and a
// non-negative amount.
func ValidateCoin(coin sdk.Coin) error {
	if coin.Denom == "" {
		return errorsmod.Wrap(ErrInvalidArgument, "empty coin denom")
	}
	if err := sdk.ValidateDenom(coin.Denom); err != nil {
		return errorsmod.Wrap(ErrInvalidArgument, err.Error())
	}
	if coin.Amount.IsNil() || coin.Amount.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidArgument, "negative or nil amount for %s", coin.Denom)
	}

	return nil
}

// ParseCoins parses a comma separated coin list ("10uatom,5stake") and
// returns it sorted by denom.
func ParseCoins(s string) (sdk.Coins, error) {
	coins, err := sdk.ParseCoinsNormalized(s)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidArgument, err.Error())
	}

	return coins, nil
}

// ValidateCoins checks every coin of the list. Duplicates are rejected.
func ValidateCoins(coins sdk.Coins) error {
	seen := make(map[string]struct{}, len(coins))
	for _, c := range coins {
		if err := ValidateCoin(c); err != nil {
			return err
		}
		if _, ok := seen[c.Denom]; ok {
			return errorsmod.Wrapf(ErrInvalidArgument, "duplicate denom %s", c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}

	return nil
}
