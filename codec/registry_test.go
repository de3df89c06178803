package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/initia-labs/gaia-sdk-go/codec"
)

func TestRegistry_Register(t *testing.T) {
	reg := codec.NewRegistry()
	c := codec.NewMessageCodec[banktypes.MsgSend](nil)

	reg.Register("/cosmos.bank.v1beta1.MsgSend", c)

	for _, url := range []string{"/cosmos.bank.v1beta1.MsgSend", "cosmos.bank.v1beta1.MsgSend"} {
		got, ok := reg.Resolve(url)
		require.True(t, ok, url)
		require.Equal(t, c, got)
	}

	_, ok := reg.Resolve("/cosmos.bank.v1beta1.MsgMultiSend")
	require.False(t, ok)

	require.Equal(t, []string{"cosmos.bank.v1beta1.MsgSend"}, reg.TypeURLs())
}

func TestRegistry_RegisterPanics(t *testing.T) {
	c := codec.NewMessageCodec[banktypes.MsgSend](nil)

	testCases := []struct {
		name string
		fn   func(reg *codec.Registry)
	}{
		{"empty type url", func(reg *codec.Registry) { reg.Register("", c) }},
		{"slash only", func(reg *codec.Registry) { reg.Register("/", c) }},
		{"nil codec", func(reg *codec.Registry) { reg.Register("/cosmos.bank.v1beta1.MsgSend", nil) }},
		{"duplicate after normalization", func(reg *codec.Registry) {
			reg.Register("/cosmos.bank.v1beta1.MsgSend", c)
			reg.Register("cosmos.bank.v1beta1.MsgSend", c)
		}},
		{"sealed", func(reg *codec.Registry) {
			reg.Seal()
			reg.Register("/cosmos.bank.v1beta1.MsgSend", c)
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Panics(t, func() { tc.fn(codec.NewRegistry()) })
		})
	}
}

func TestRegistry_TypeURLsSorted(t *testing.T) {
	reg := codec.NewRegistry()
	codec.RegisterDefaults(reg, nil)

	urls := reg.TypeURLs()
	require.Len(t, urls, 22)
	require.IsIncreasing(t, urls)
	require.Contains(t, urls, "ibc.applications.transfer.v1.MsgTransfer")
	require.Contains(t, urls, "cosmos.feegrant.v1beta1.MsgGrantAllowance")
}

func TestNewResolverSeals(t *testing.T) {
	reg := codec.NewRegistry()
	require.False(t, reg.IsSealed())

	codec.NewResolver(reg)
	require.True(t, reg.IsSealed())
}
