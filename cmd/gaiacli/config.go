package main

import (
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/config"
	"github.com/initia-labs/gaia-sdk-go/types"
)

func configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage <home>/" + config.FileName,
	}

	cmd.AddCommand(
		configInitCmd(),
		configSetCmd(),
		configShowCmd(),
	)

	return cmd
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx := getCmdContext(cmd)

			force, err := cmd.Flags().GetBool(flags.FlagForce)
			if err != nil {
				return err
			}

			path := filepath.Join(cctx.home, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return errorsmod.Wrapf(types.ErrInvalidArgument, "%s already exists, use --%s to overwrite it", path, flags.FlagForce)
			}

			if err := config.WriteConfigFile(path, cctx.config); err != nil {
				return err
			}

			cctx.logger.Info("wrote config file", "path", path)
			return nil
		},
	}

	cmd.Flags().Bool(flags.FlagForce, false, "overwrite an existing config file")
	return cmd
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "set [key] [value]",
		Short:   "Set a key of the config file",
		Example: "gaiacli config set chain-id theta-testnet-001",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx := getCmdContext(cmd)
			return config.SetValue(filepath.Join(cctx.home, config.FileName), args[0], args[1])
		},
	}
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printOutput(cmd, getCmdContext(cmd).config)
		},
	}
}
