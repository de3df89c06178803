package main

import (
	"github.com/spf13/cobra"

	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/types"
)

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transactions subcommands",
	}

	cmd.AddCommand(txSendCmd())

	return cmd
}

func txSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send [from-key] [to-address] [amount]",
		Short: "Send coins from a stored key to an address",
		Example: `gaiacli tx send alice cosmos1... 1000uatom --fee 500uatom
gaiacli tx send alice cosmos1... 1000uatom,5stake --simulate --broadcast-mode commit`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := getCmdContext(cmd)

			amount, err := types.ParseCoins(args[2])
			if err != nil {
				return err
			}

			cfg, baseTx, err := readTxFlags(cmd, cctx)
			if err != nil {
				return err
			}
			baseTx.From = args[0]

			store, err := cctx.openKeyStore()
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := cctx.newClient(store, cfg)
			if err != nil {
				return err
			}

			baseTx.Password, err = readPassword(cmd, "Enter keyring passphrase")
			if err != nil {
				return err
			}

			res, err := c.Bank().Send(cmd.Context(), args[1], amount, baseTx)
			if res != nil {
				if printErr := printOutput(cmd, res); printErr != nil {
					return printErr
				}
			}

			return err
		},
	}

	flags.AddTxFlags(cmd.Flags())
	return cmd
}

// readTxFlags applies the tx flags to the configured client config and
// returns the base tx they describe.
func readTxFlags(cmd *cobra.Command, cctx *cmdContext) (types.ClientConfig, types.BaseTx, error) {
	cfg, err := cctx.clientConfig()
	if err != nil {
		return types.ClientConfig{}, types.BaseTx{}, err
	}

	fs := cmd.Flags()
	var baseTx types.BaseTx

	if baseTx.Gas, err = fs.GetUint64(flags.FlagGas); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.Memo, err = fs.GetString(flags.FlagMemo); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.Simulate, err = fs.GetBool(flags.FlagSimulate); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.TimeoutHeight, err = fs.GetUint64(flags.FlagTimeoutHeight); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.Offline, err = fs.GetBool(flags.FlagOffline); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.AccountNumber, err = fs.GetUint64(flags.FlagAccountNumber); err != nil {
		return cfg, baseTx, err
	}
	if baseTx.Sequence, err = fs.GetUint64(flags.FlagSequence); err != nil {
		return cfg, baseTx, err
	}

	mode, err := fs.GetString(flags.FlagBroadcastMode)
	if err != nil {
		return cfg, baseTx, err
	}
	if baseTx.Mode, err = types.BroadcastModeFromString(mode); err != nil {
		return cfg, baseTx, err
	}

	fee, err := fs.GetString(flags.FlagFee)
	if err != nil {
		return cfg, baseTx, err
	}
	if fee != "" {
		if baseTx.Fee, err = types.ParseCoins(fee); err != nil {
			return cfg, baseTx, err
		}
	}

	gasAdjustment, err := fs.GetFloat64(flags.FlagGasAdjustment)
	if err != nil {
		return cfg, baseTx, err
	}
	if gasAdjustment != 0 {
		cfg = cfg.WithGasAdjustment(gasAdjustment)
	}

	return cfg, baseTx, nil
}
