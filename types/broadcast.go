package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// BroadcastMode is the confirmation level requested when submitting a tx.
type BroadcastMode int

const (
	// BroadcastSync waits for the CheckTx result.
	BroadcastSync BroadcastMode = iota
	// BroadcastAsync returns as soon as the node received the tx.
	BroadcastAsync
	// BroadcastCommit waits until the tx is committed in a block.
	BroadcastCommit
)

// String implements fmt.Stringer.
func (m BroadcastMode) String() string {
	switch m {
	case BroadcastAsync:
		return "async"
	case BroadcastSync:
		return "sync"
	case BroadcastCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// BroadcastModeFromString parses async, sync or commit (block is accepted as
// an alias of commit).
func BroadcastModeFromString(s string) (BroadcastMode, error) {
	switch strings.ToLower(s) {
	case "async":
		return BroadcastAsync, nil
	case "", "sync":
		return BroadcastSync, nil
	case "commit", "block":
		return BroadcastCommit, nil
	default:
		return BroadcastSync, errorsmod.Wrapf(ErrInvalidArgument, "unknown broadcast mode %q", s)
	}
}
