package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BaseTx carries the per-transaction parameters shared by every tx wrapper.
type BaseTx struct {
	// From is the name of the signing key in the key store.
	From     string
	Password string
	// Gas overrides ClientConfig.Gas when non-zero.
	Gas uint64
	// Fee overrides ClientConfig.Fee when non-empty.
	Fee           sdk.Coins
	Memo          string
	TimeoutHeight uint64
	Mode          BroadcastMode
	// Simulate estimates gas before signing.
	Simulate bool

	// AccountNumber and Sequence skip the account query when Offline is set.
	Offline       bool
	AccountNumber uint64
	Sequence      uint64
}
