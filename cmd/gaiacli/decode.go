package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"
	"github.com/spf13/cobra"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/codec"
	"github.com/initia-labs/gaia-sdk-go/types"
)

func decodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode protobuf payloads into their plain JSON form",
	}

	cmd.AddCommand(
		decodeTxCmd(),
		decodeFixedCmd("signdoc", "Decode a serialized SignDoc", func(d *codec.TxDecoder, bz []byte) (*codec.Message, error) {
			return d.DecodeSignDoc(bz, false)
		}),
		decodeFixedCmd("txraw", "Decode a serialized TxRaw", func(d *codec.TxDecoder, bz []byte) (*codec.Message, error) {
			return d.DecodeTxRaw(bz, false)
		}),
		decodeFixedCmd("signing-info", "Decode a serialized validator signing info", func(d *codec.TxDecoder, bz []byte) (*codec.Message, error) {
			return d.DecodeSigningInfo(bz, false)
		}),
		decodePubKeyCmd(),
	)

	return cmd
}

func decodeTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx [tx-bytes]",
		Short: "Decode a serialized transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := decodeInput(cmd, args[0])
			if err != nil {
				return err
			}

			cctx := getCmdContext(cmd)
			tx, err := cctx.encoding.TxDecoder.DecodeTx(bz, false)
			if err != nil {
				return err
			}

			out, err := plainTx(cctx, tx)
			if err != nil {
				return err
			}

			return printOutput(cmd, out)
		},
	}

	flags.AddDecodeFlags(cmd.Flags())
	return cmd
}

func decodeFixedCmd(use, short string, decode func(*codec.TxDecoder, []byte) (*codec.Message, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [bytes]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := decodeInput(cmd, args[0])
			if err != nil {
				return err
			}

			msg, err := decode(getCmdContext(cmd).encoding.TxDecoder, bz)
			if err != nil {
				return err
			}

			return printOutput(cmd, msg.Plain)
		},
	}

	flags.AddDecodeFlags(cmd.Flags())
	return cmd
}

func decodePubKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pubkey [any-bytes]",
		Short: "Decode a serialized public key Any",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := decodeInput(cmd, args[0])
			if err != nil {
				return err
			}

			var a codectypes.Any
			if err := proto.Unmarshal(bz, &a); err != nil {
				return errorsmod.Wrapf(types.ErrInvalidArgument, "failed to decode any: %s", err)
			}

			pk, err := getCmdContext(cmd).encoding.TxDecoder.DecodePublicKey(&a, false)
			if err != nil {
				return err
			}

			return printOutput(cmd, pk.Plain)
		},
	}

	flags.AddDecodeFlags(cmd.Flags())
	return cmd
}

// decodeInput decodes a base64 argument, or a hex one with --hex.
func decodeInput(cmd *cobra.Command, arg string) ([]byte, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "input can not be empty")
	}

	isHex, err := cmd.Flags().GetBool(flags.FlagHex)
	if err != nil {
		return nil, err
	}

	var bz []byte
	if isHex {
		bz, err = hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	} else {
		bz, err = base64.StdEncoding.DecodeString(arg)
	}
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid input: %s", err)
	}

	return bz, nil
}

// plainTx is the printable form of a decoded transaction. Auth info is
// rendered through the proto JSON codec when the plain form was not decoded.
func plainTx(cctx *cmdContext, tx *codec.DecodedTx) (map[string]any, error) {
	sigs := make([]string, len(tx.Signatures))
	for i, sig := range tx.Signatures {
		sigs[i] = base64.StdEncoding.EncodeToString(sig)
	}

	var authInfo any = tx.AuthInfoPlain
	if tx.AuthInfoPlain == nil && tx.AuthInfo != nil {
		bz, err := cctx.encoding.Codec.MarshalJSON(tx.AuthInfo)
		if err != nil {
			return nil, err
		}
		authInfo = json.RawMessage(bz)
	}

	return map[string]any{
		"body": map[string]any{
			"messages":       tx.Body.Messages,
			"memo":           tx.Body.Memo,
			"timeout_height": tx.Body.TimeoutHeight,
		},
		"auth_info":  authInfo,
		"signatures": sigs,
	}, nil
}
