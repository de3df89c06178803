package main

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/gaia-sdk-go/client"
	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Querying subcommands",
	}

	cmd.AddCommand(
		queryBalanceCmd(),
		queryAccountCmd(),
		queryBlockCmd(),
		queryTxCmd(),
	)

	return cmd
}

// queryClient builds a client without a key store along with the query
// context carrying the --height flag.
func queryClient(cmd *cobra.Command) (*client.Client, context.Context, error) {
	cctx := getCmdContext(cmd)

	cfg, err := cctx.clientConfig()
	if err != nil {
		return nil, nil, err
	}

	c, err := client.NewClient(cfg, client.WithLogger(cctx.logger))
	if err != nil {
		return nil, nil, err
	}

	ctx := cmd.Context()
	if cmd.Flags().Lookup(flags.FlagHeight) != nil {
		height, err := cmd.Flags().GetInt64(flags.FlagHeight)
		if err != nil {
			return nil, nil, err
		}
		ctx = rpc.WithHeight(ctx, height)
	}

	return c, ctx, nil
}

func queryBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [address]",
		Short: "Query the balances of an account, or a single denom with --denom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, err := queryClient(cmd)
			if err != nil {
				return err
			}

			denom, err := cmd.Flags().GetString(flags.FlagDenom)
			if err != nil {
				return err
			}

			if denom != "" {
				balance, err := c.Bank().QueryBalance(ctx, args[0], denom)
				if err != nil {
					return err
				}
				return printOutput(cmd, &balance)
			}

			balances, err := c.Bank().QueryAllBalances(ctx, args[0], nil)
			if err != nil {
				return err
			}

			return printOutput(cmd, map[string]any{"balances": balances})
		},
	}

	cmd.Flags().String(flags.FlagDenom, "", "the denom to query the balance of")
	cmd.Flags().Int64(flags.FlagHeight, 0, "query state at this height, the latest when zero")
	return cmd
}

func queryAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account [address]",
		Short: "Query an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, err := queryClient(cmd)
			if err != nil {
				return err
			}

			acc, err := c.Auth().QueryAccount(ctx, args[0])
			if err != nil {
				return err
			}

			return printOutput(cmd, acc)
		},
	}

	cmd.Flags().Int64(flags.FlagHeight, 0, "query state at this height, the latest when zero")
	return cmd
}

func queryBlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block [height]",
		Short: "Query a block with its decoded transactions, the latest one without height",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var height int64
			if len(args) == 1 {
				var err error
				if height, err = strconv.ParseInt(args[0], 10, 64); err != nil {
					return errorsmod.Wrapf(types.ErrInvalidArgument, "invalid height %q", args[0])
				}
			}

			c, ctx, err := queryClient(cmd)
			if err != nil {
				return err
			}

			block, err := c.Tendermint().QueryBlock(ctx, height)
			if err != nil {
				return err
			}

			cctx := getCmdContext(cmd)
			txs := make([]map[string]any, len(block.Txs))
			for i, tx := range block.Txs {
				if txs[i], err = plainTx(cctx, tx); err != nil {
					return err
				}
			}

			header := block.Block.Header
			return printOutput(cmd, map[string]any{
				"height":   header.Height,
				"hash":     block.BlockID.Hash.String(),
				"time":     header.Time,
				"chain_id": header.ChainID,
				"proposer": header.ProposerAddress.String(),
				"txs":      txs,
			})
		},
	}
}

func queryTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tx [hash]",
		Short: "Query a committed transaction by its hex hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, err := queryClient(cmd)
			if err != nil {
				return err
			}

			info, err := c.Tendermint().QueryTx(ctx, args[0])
			if err != nil {
				return err
			}

			tx, err := plainTx(getCmdContext(cmd), info.Tx)
			if err != nil {
				return err
			}

			return printOutput(cmd, map[string]any{
				"hash":       info.Hash,
				"height":     info.Height,
				"index":      info.Index,
				"code":       info.Result.Code,
				"codespace":  info.Result.Codespace,
				"log":        info.Result.Log,
				"gas_wanted": info.Result.GasWanted,
				"gas_used":   info.Result.GasUsed,
				"tx":         tx,
			})
		},
	}
}
