package params

import (
	"cosmossdk.io/x/feegrant"
	"cosmossdk.io/x/tx/signing"
	"github.com/cosmos/gogoproto/proto"

	sdkcodec "github.com/cosmos/cosmos-sdk/codec"
	codecaddress "github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/std"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/cosmos/cosmos-sdk/x/authz"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"
	slashingtypes "github.com/cosmos/cosmos-sdk/x/slashing/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"

	ibctransfertypes "github.com/cosmos/ibc-go/v8/modules/apps/transfer/types"

	"github.com/initia-labs/gaia-sdk-go/codec"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// EncodingConfig bundles everything needed to encode, decode and project
// gaia messages.
type EncodingConfig struct {
	InterfaceRegistry codectypes.InterfaceRegistry
	Codec             *sdkcodec.ProtoCodec
	Registry          *codec.Registry
	Resolver          *codec.Resolver
	TxDecoder         *codec.TxDecoder
}

// MakeEncodingConfig creates an EncodingConfig whose address codecs use the
// given bech32 prefixes. The returned registry is sealed.
func MakeEncodingConfig(prefix types.Bech32Prefix) EncodingConfig {
	interfaceRegistry, err := codectypes.NewInterfaceRegistryWithOptions(codectypes.InterfaceRegistryOptions{
		ProtoFiles: proto.HybridResolver,
		SigningOptions: signing.Options{
			AddressCodec:          codecaddress.NewBech32Codec(prefix.AccAddr),
			ValidatorAddressCodec: codecaddress.NewBech32Codec(prefix.ValAddr),
		},
	})
	if err != nil {
		panic(err)
	}
	RegisterInterfaces(interfaceRegistry)

	protoCodec := sdkcodec.NewProtoCodec(interfaceRegistry)

	registry := codec.NewRegistry()
	codec.RegisterDefaults(registry, protoCodec)
	resolver := codec.NewResolver(registry)

	return EncodingConfig{
		InterfaceRegistry: interfaceRegistry,
		Codec:             protoCodec,
		Registry:          registry,
		Resolver:          resolver,
		TxDecoder:         codec.NewTxDecoder(resolver, protoCodec),
	}
}

// RegisterInterfaces registers the interface implementations needed to
// resolve nested Any values of the supported modules.
func RegisterInterfaces(registry codectypes.InterfaceRegistry) {
	std.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	stakingtypes.RegisterInterfaces(registry)
	distrtypes.RegisterInterfaces(registry)
	govv1beta1.RegisterInterfaces(registry)
	slashingtypes.RegisterInterfaces(registry)
	authz.RegisterInterfaces(registry)
	feegrant.RegisterInterfaces(registry)
	ibctransfertypes.RegisterInterfaces(registry)
}
