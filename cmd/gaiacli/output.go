package main

import (
	"bytes"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/gogoproto/proto"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// printOutput writes v to the command output in the configured format.
// Protobuf messages are rendered through the proto JSON codec.
func printOutput(cmd *cobra.Command, v any) error {
	cctx := getCmdContext(cmd)

	var (
		bz  []byte
		err error
	)
	if msg, ok := v.(proto.Message); ok {
		bz, err = cctx.encoding.Codec.MarshalJSON(msg)
	} else {
		bz, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	switch cctx.config.Output {
	case "json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, bz, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')

		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err

	case "yaml":
		var obj any
		if err := json.Unmarshal(bz, &obj); err != nil {
			return err
		}

		out, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err

	default:
		return errorsmod.Wrapf(types.ErrInvalidArgument, "unknown output format %q", cctx.config.Output)
	}
}
