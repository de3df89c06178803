package signing

import (
	"crypto/ed25519"
	"time"

	errorsmod "cosmossdk.io/errors"

	sdked25519 "github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	dcrsecp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/initia-labs/gaia-sdk-go/crypto/ethsecp256k1"
	"github.com/initia-labs/gaia-sdk-go/types"
)

var timeNow = time.Now

const (
	Secp256k1Name    = "secp256k1"
	Ed25519Name      = "ed25519"
	EthSecp256k1Name = ethsecp256k1.KeyType
)

var (
	// Secp256k1 signs sha256(msg) and returns a 64 byte low-S r || s.
	Secp256k1 Scheme = secp256k1Scheme{}
	// Ed25519 accepts a 32 byte seed or a 64 byte private key.
	Ed25519 Scheme = ed25519Scheme{}
	// EthSecp256k1 signs keccak256(msg) and returns r || s || v.
	EthSecp256k1 Scheme = ethSecp256k1Scheme{}
)

type secp256k1Scheme struct{}

func (secp256k1Scheme) Name() string { return Secp256k1Name }

func (secp256k1Scheme) PrivKey(privKey []byte) (cryptotypes.PrivKey, error) {
	if len(privKey) != secp256k1.PrivKeySize {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid secp256k1 key length, expected %d, got %d", secp256k1.PrivKeySize, len(privKey))
	}

	// the scalar must lie in [1, N)
	var d dcrsecp256k1.ModNScalar
	if overflow := d.SetByteSlice(privKey); overflow || d.IsZero() {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "secp256k1 private key is out of range")
	}
	d.Zero()

	return &secp256k1.PrivKey{Key: append([]byte(nil), privKey...)}, nil
}

type ed25519Scheme struct{}

func (ed25519Scheme) Name() string { return Ed25519Name }

func (ed25519Scheme) PrivKey(privKey []byte) (cryptotypes.PrivKey, error) {
	switch len(privKey) {
	case ed25519.SeedSize:
		return &sdked25519.PrivKey{Key: ed25519.NewKeyFromSeed(privKey)}, nil
	case ed25519.PrivateKeySize:
		return &sdked25519.PrivKey{Key: append([]byte(nil), privKey...)}, nil
	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid ed25519 key length %d", len(privKey))
	}
}

type ethSecp256k1Scheme struct{}

func (ethSecp256k1Scheme) Name() string { return EthSecp256k1Name }

func (ethSecp256k1Scheme) PrivKey(privKey []byte) (cryptotypes.PrivKey, error) {
	return ethsecp256k1.NewPrivKeyFromBytes(privKey)
}
