package codec

import (
	"github.com/cosmos/gogoproto/proto"

	"cosmossdk.io/x/feegrant"

	"github.com/cosmos/cosmos-sdk/x/authz"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	ibctransfertypes "github.com/cosmos/ibc-go/v8/modules/apps/transfer/types"
)

// RegisterDefaults registers the message types the client builds and
// decodes out of the box.
func RegisterDefaults(reg *Registry, cdc JSONMarshaler) {
	// bank
	register[banktypes.MsgSend](reg, cdc)
	register[banktypes.MsgMultiSend](reg, cdc)

	// staking
	register[stakingtypes.MsgDelegate](reg, cdc)
	register[stakingtypes.MsgUndelegate](reg, cdc)
	register[stakingtypes.MsgBeginRedelegate](reg, cdc)
	register[stakingtypes.MsgCreateValidator](reg, cdc)
	register[stakingtypes.MsgEditValidator](reg, cdc)
	register[stakingtypes.MsgCancelUnbondingDelegation](reg, cdc)

	// distribution
	register[distrtypes.MsgWithdrawDelegatorReward](reg, cdc)
	register[distrtypes.MsgSetWithdrawAddress](reg, cdc)
	register[distrtypes.MsgWithdrawValidatorCommission](reg, cdc)
	register[distrtypes.MsgFundCommunityPool](reg, cdc)

	// gov
	register[govv1beta1.MsgSubmitProposal](reg, cdc)
	register[govv1beta1.MsgVote](reg, cdc)
	register[govv1beta1.MsgDeposit](reg, cdc)

	// slashing
	register[slashingtypes.MsgUnjail](reg, cdc)

	// authz
	register[authz.MsgGrant](reg, cdc)
	register[authz.MsgRevoke](reg, cdc)
	register[authz.MsgExec](reg, cdc)

	// feegrant
	register[feegrant.MsgGrantAllowance](reg, cdc)
	register[feegrant.MsgRevokeAllowance](reg, cdc)

	// ibc
	register[ibctransfertypes.MsgTransfer](reg, cdc)
}

func register[T any, PT interface {
	*T
	proto.Message
}](reg *Registry, cdc JSONMarshaler) {
	reg.Register(proto.MessageName(PT(new(T))), NewMessageCodec[T, PT](cdc))
}
