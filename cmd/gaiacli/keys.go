package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/initia-labs/gaia-sdk-go/client"
	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/crypto/keyring/dbdao"
)

func keysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the keys stored under <home>/keys",
	}

	cmd.AddCommand(
		keysAddCmd(),
		keysRecoverCmd(),
		keysImportCmd(),
		keysExportCmd(),
		keysDeleteCmd(),
		keysShowCmd(),
		keysListCmd(),
	)

	return cmd
}

// withKeys runs fn with a client over the key store and closes the store
// afterwards.
func withKeys(cmd *cobra.Command, fn func(keys client.Keys, store *dbdao.Store) error) error {
	cctx := getCmdContext(cmd)

	store, err := cctx.openKeyStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cfg, err := cctx.clientConfig()
	if err != nil {
		return err
	}

	c, err := cctx.newClient(store, cfg)
	if err != nil {
		return err
	}

	return fn(c.Keys(), store)
}

func keysAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a key from a new mnemonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := cmd.Flags().GetString(flags.FlagAlgo)
			if err != nil {
				return err
			}

			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				password, err := readNewPassword(cmd)
				if err != nil {
					return err
				}

				info, mnemonic, err := keys.Add(args[0], password, algo)
				if err != nil {
					return err
				}

				warn(cmd, "**Important** write this mnemonic phrase in a safe place.\nIt is the only way to recover your account if you ever forget your password.\n\n%s\n", mnemonic)
				return printOutput(cmd, info)
			})
		},
	}

	flags.AddKeyFlags(cmd.Flags())
	return cmd
}

func keysRecoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover [name]",
		Short: "Recover a key from its mnemonic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := cmd.Flags().GetString(flags.FlagAlgo)
			if err != nil {
				return err
			}
			hdPath, err := cmd.Flags().GetString(flags.FlagHDPath)
			if err != nil {
				return err
			}

			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				if isTerminal(cmd) {
					cmd.PrintErrln("Enter your bip39 mnemonic")
				}
				mnemonic, err := readLine(cmd)
				if err != nil {
					return err
				}

				password, err := readNewPassword(cmd)
				if err != nil {
					return err
				}

				info, err := keys.Recover(args[0], password, mnemonic, algo, hdPath)
				if err != nil {
					return err
				}

				return printOutput(cmd, info)
			})
		},
	}

	flags.AddKeyFlags(cmd.Flags())
	return cmd
}

func keysImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [name] [hex-private-key]",
		Short: "Import a hex encoded private key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := cmd.Flags().GetString(flags.FlagAlgo)
			if err != nil {
				return err
			}

			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				password, err := readNewPassword(cmd)
				if err != nil {
					return err
				}

				info, err := keys.Import(args[0], password, args[1], algo)
				if err != nil {
					return err
				}

				return printOutput(cmd, info)
			})
		},
	}

	flags.AddKeyFlags(cmd.Flags())
	return cmd
}

func keysExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [name]",
		Short: "Export the hex encoded private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				password, err := readPassword(cmd, "Enter keyring passphrase")
				if err != nil {
					return err
				}

				privKey, err := keys.Export(args[0], password)
				if err != nil {
					return err
				}

				warn(cmd, "**WARNING** the private key is printed unencrypted.")
				_, err = fmt.Fprintln(cmd.OutOrStdout(), privKey)
				return err
			})
		},
	}
}

func keysDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				password, err := readPassword(cmd, "Enter keyring passphrase")
				if err != nil {
					return err
				}

				if err := keys.Delete(args[0], password); err != nil {
					return err
				}

				cmd.PrintErrln("Key deleted forever (uh oh!)")
				return nil
			})
		},
	}
}

func keysShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show the public part of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKeys(cmd, func(keys client.Keys, _ *dbdao.Store) error {
				info, err := keys.Show(args[0])
				if err != nil {
					return err
				}

				return printOutput(cmd, info)
			})
		},
	}
}

func keysListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withKeys(cmd, func(keys client.Keys, store *dbdao.Store) error {
				names, err := store.List()
				if err != nil {
					return err
				}

				infos := make([]client.KeyInfo, 0, len(names))
				for _, name := range names {
					info, err := keys.Show(name)
					if err != nil {
						return err
					}
					infos = append(infos, info)
				}

				return printOutput(cmd, infos)
			})
		},
	}
}
