package client

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// validateAddress checks that addr is a bech32 address with the given prefix.
func validateAddress(addr, prefix string) error {
	if addr == "" {
		return errorsmod.Wrap(types.ErrInvalidArgument, "address can not be empty")
	}

	hrp, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return errorsmod.Wrapf(types.ErrInvalidArgument, "invalid address %s: %s", addr, err)
	}
	if hrp != prefix {
		return errorsmod.Wrapf(types.ErrInvalidArgument, "invalid address prefix %s, expected %s", hrp, prefix)
	}
	if len(bz) == 0 {
		return errorsmod.Wrapf(types.ErrInvalidArgument, "empty address %s", addr)
	}

	return nil
}

// convertAddress re-encodes addr under another prefix, e.g. an account
// address into its validator operator address.
func convertAddress(addr, prefix string) (string, error) {
	_, bz, err := bech32.DecodeAndConvert(addr)
	if err != nil {
		return "", errorsmod.Wrapf(types.ErrInvalidArgument, "invalid address %s: %s", addr, err)
	}

	out, err := bech32.ConvertAndEncode(prefix, bz)
	if err != nil {
		return "", errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
	}

	return out, nil
}

func (c *Client) accAddress(bz []byte) (string, error) {
	addr, err := bech32.ConvertAndEncode(c.cfg.Bech32Prefix.AccAddr, bz)
	if err != nil {
		return "", errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
	}

	return addr, nil
}

func (c *Client) validateAccAddress(addr string) error {
	return validateAddress(addr, c.cfg.Bech32Prefix.AccAddr)
}

func (c *Client) validateValAddress(addr string) error {
	return validateAddress(addr, c.cfg.Bech32Prefix.ValAddr)
}
