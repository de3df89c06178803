package main

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"cosmossdk.io/log"
	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/gaia-sdk-go/client"
	"github.com/initia-labs/gaia-sdk-go/cmd/flags"
	"github.com/initia-labs/gaia-sdk-go/config"
	"github.com/initia-labs/gaia-sdk-go/crypto/keyring/dbdao"
	"github.com/initia-labs/gaia-sdk-go/params"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// DefaultHome is the default home directory of gaiacli.
var DefaultHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultHome = filepath.Join(userHomeDir, ".gaiacli")
}

type cmdContextKey struct{}

// cmdContext is the state shared by the commands of one execution.
type cmdContext struct {
	home     string
	config   config.Config
	logger   log.Logger
	encoding params.EncodingConfig
	in       *bufio.Reader
}

// NewRootCmd creates the gaiacli root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gaiacli",
		Short:        "Light client for gaia: decode, sign and send transactions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cctx, err := loadCmdContext(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, cmdContextKey{}, cctx))

			return nil
		},
	}

	flags.AddPersistentFlags(rootCmd.PersistentFlags(), DefaultHome)

	rootCmd.AddCommand(
		decodeCommand(),
		keysCommand(),
		txCommand(),
		queryCommand(),
		configCommand(),
	)

	return rootCmd
}

// loadCmdContext reads <home>/client.toml if present; environment
// variables and changed persistent flags take precedence.
func loadCmdContext(cmd *cobra.Command) (*cmdContext, error) {
	home, err := cmd.Flags().GetString(flags.FlagHome)
	if err != nil {
		return nil, err
	}

	v := config.NewViper()
	for _, name := range []string{flags.FlagNode, flags.FlagGRPCAddr, flags.FlagChainID, flags.FlagOutput} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(home, config.FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "failed to read %s: %s", path, err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}

	logLevel, err := cmd.Flags().GetString(flags.FlagLogLevel)
	if err != nil {
		return nil, err
	}

	filter, err := log.ParseLogLevel(logLevel)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid log level %q: %s", logLevel, err)
	}

	return &cmdContext{
		home:     home,
		config:   cfg,
		logger:   log.NewLogger(cmd.ErrOrStderr(), log.FilterOption(filter)),
		encoding: params.MakeEncodingConfig(types.NewBech32Prefix(cfg.Bech32Prefix)),
		in:       bufio.NewReader(cmd.InOrStdin()),
	}, nil
}

func getCmdContext(cmd *cobra.Command) *cmdContext {
	return cmd.Context().Value(cmdContextKey{}).(*cmdContext)
}

// openKeyStore opens the key database under <home>/keys.
func (c *cmdContext) openKeyStore() (*dbdao.Store, error) {
	return dbdao.OpenStore("keys", filepath.Join(c.home, "keys"))
}

// newClient builds a client over the configured node storing keys in store.
func (c *cmdContext) newClient(store *dbdao.Store, cfg types.ClientConfig) (*client.Client, error) {
	return client.NewClient(cfg, client.WithKeyDAO(store), client.WithLogger(c.logger))
}

func (c *cmdContext) clientConfig() (types.ClientConfig, error) {
	return c.config.ClientConfig()
}
