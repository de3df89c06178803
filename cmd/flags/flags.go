package flags

import (
	"github.com/spf13/pflag"

	"github.com/initia-labs/gaia-sdk-go/config"
	"github.com/initia-labs/gaia-sdk-go/crypto/signing"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// persistent flags
const (
	FlagHome     = "home"
	FlagNode     = config.KeyNode
	FlagGRPCAddr = config.KeyGRPCAddr
	FlagChainID  = config.KeyChainID
	FlagOutput   = config.KeyOutput
	FlagLogLevel = "log-level"
)

// tx flags
const (
	FlagGas           = config.KeyGas
	FlagFee           = config.KeyFee
	FlagGasAdjustment = config.KeyGasAdjustment
	FlagMemo          = "memo"
	FlagBroadcastMode = "broadcast-mode"
	FlagSimulate      = "simulate"
	FlagTimeoutHeight = "timeout-height"
	FlagOffline       = "offline"
	FlagAccountNumber = "account-number"
	FlagSequence      = "sequence"
)

// key and query flags
const (
	FlagAlgo   = "algo"
	FlagHDPath = "hd-path"
	FlagDenom  = "denom"
	FlagHeight = "height"
	FlagHex    = "hex"
	FlagForce  = "force"
)

// AddPersistentFlags adds the flags shared by every command.
func AddPersistentFlags(fs *pflag.FlagSet, defaultHome string) {
	def := config.DefaultConfig()

	fs.String(FlagHome, defaultHome, "directory for config and keys")
	fs.String(FlagNode, def.Node, "<host>:<port> to the CometBFT rpc interface of the node")
	fs.String(FlagGRPCAddr, def.GRPCAddr, "optional gRPC endpoint used for queries")
	fs.String(FlagChainID, def.ChainID, "the network chain ID")
	fs.StringP(FlagOutput, "o", def.Output, "output format (json|yaml)")
	fs.String(FlagLogLevel, "info", "the logging level (trace|debug|info|warn|error|fatal|panic|disabled or '*:<level>,<key>:<level>')")
}

// AddTxFlags adds the flags of commands that build and broadcast a
// transaction.
func AddTxFlags(fs *pflag.FlagSet) {
	fs.Uint64(FlagGas, 0, "gas limit, the configured default when zero")
	fs.String(FlagFee, "", "fee to pay, e.g. 500uatom; the configured default when empty")
	fs.Float64(FlagGasAdjustment, 0, "multiplier applied to simulated gas, the configured default when zero")
	fs.String(FlagMemo, "", "memo to attach")
	fs.String(FlagBroadcastMode, types.BroadcastSync.String(), "transaction broadcasting mode (sync|async|commit)")
	fs.Bool(FlagSimulate, false, "estimate the gas limit by simulating the transaction")
	fs.Uint64(FlagTimeoutHeight, 0, "block height after which the transaction is not valid")
	fs.Bool(FlagOffline, false, "sign with --account-number and --sequence instead of querying the account")
	fs.Uint64(FlagAccountNumber, 0, "account number of the signer, used with --offline")
	fs.Uint64(FlagSequence, 0, "sequence of the signer, used with --offline")
}

// AddKeyFlags adds the flags of key creating commands.
func AddKeyFlags(fs *pflag.FlagSet) {
	fs.String(FlagAlgo, signing.Secp256k1Name, "key signing algorithm")
	fs.String(FlagHDPath, "", "BIP-44 derivation path, the default path of the algorithm when empty")
}

// AddDecodeFlags adds the input format flags of decode commands.
func AddDecodeFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagHex, false, "input is hex instead of base64")
}
