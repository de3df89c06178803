package hd

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/go-bip39"

	"github.com/cosmos/cosmos-sdk/crypto/hd"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	"github.com/initia-labs/gaia-sdk-go/crypto/ethsecp256k1"
	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	// EthSecp256k1Type is the ECDSA secp256k1 flavour used on Ethereum.
	EthSecp256k1Type = hd.PubKeyType(ethsecp256k1.KeyType)

	// DefaultFullBIP44Path is the cosmos hub derivation path.
	DefaultFullBIP44Path = "m/44'/118'/0'/0/0"
	// EthFullBIP44Path is the Ethereum derivation path.
	EthFullBIP44Path = "m/44'/60'/0'/0/0"

	mnemonicEntropySize = 256
)

var (
	_ keyring.SignatureAlgo = EthSecp256k1

	// EthSecp256k1 derives keys on the Ethereum path and generates
	// eth_secp256k1 private keys.
	EthSecp256k1 = ethSecp256k1Algo{}

	// SupportedAlgorithms lists the algorithms keys can be derived for.
	SupportedAlgorithms = keyring.SigningAlgoList{hd.Secp256k1, EthSecp256k1}
)

type ethSecp256k1Algo struct{}

func (ethSecp256k1Algo) Name() hd.PubKeyType {
	return EthSecp256k1Type
}

// Derive swaps the cosmos default path for the Ethereum one.
func (ethSecp256k1Algo) Derive() hd.DeriveFn {
	return func(mnemonic, bip39Passphrase, hdPath string) ([]byte, error) {
		if hdPath == DefaultFullBIP44Path {
			hdPath = EthFullBIP44Path
		}

		return hd.Secp256k1.Derive()(mnemonic, bip39Passphrase, hdPath)
	}
}

func (ethSecp256k1Algo) Generate() hd.GenerateFn {
	return func(bz []byte) cryptotypes.PrivKey {
		key := make([]byte, ethsecp256k1.PrivKeySize)
		copy(key, bz)

		return &ethsecp256k1.PrivKey{Key: key}
	}
}

// AlgoFromString returns the supported algorithm called name.
func AlgoFromString(name string) (keyring.SignatureAlgo, error) {
	algo, err := keyring.NewSigningAlgoFromString(name, SupportedAlgorithms)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrSignatureSchemeUnsupported, name)
	}

	return algo, nil
}

// NewMnemonic returns a fresh 24 word mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropySize)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// DerivePrivKey derives the private key of mnemonic at hdPath. An empty
// hdPath selects DefaultFullBIP44Path.
func DerivePrivKey(algo keyring.SignatureAlgo, mnemonic, bip39Passphrase, hdPath string) (cryptotypes.PrivKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "invalid mnemonic")
	}
	if hdPath == "" {
		hdPath = DefaultFullBIP44Path
	}

	derived, err := algo.Derive()(mnemonic, bip39Passphrase, hdPath)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
	}

	return algo.Generate()(derived), nil
}
