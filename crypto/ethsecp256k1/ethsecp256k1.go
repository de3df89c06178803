package ethsecp256k1

import (
	"bytes"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/cometbft/cometbft/crypto"
	"golang.org/x/crypto/sha3"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	// PrivKeySize is the size of a private key scalar.
	PrivKeySize = 32
	// PubKeySize is the size of a compressed public key.
	PubKeySize = 33
	// UncompressedPubKeySize is the size of an uncompressed public key.
	UncompressedPubKeySize = 65
	// SignatureSize is the size of an r || s || v signature.
	SignatureSize = 65
	// KeyType is the algorithm name of eth_secp256k1 keys.
	KeyType = "eth_secp256k1"
)

var _ cryptotypes.PrivKey = &PrivKey{}

// GenerateKey returns a fresh random private key.
func GenerateKey() *PrivKey {
	return &PrivKey{Key: genPrivKey(crypto.CReader())}
}

// genPrivKey draws scalars from rand until one lies in [1, N).
func genPrivKey(rand io.Reader) []byte {
	var bz [PrivKeySize]byte
	d := new(big.Int)
	for {
		if _, err := io.ReadFull(rand, bz[:]); err != nil {
			panic(err)
		}

		d.SetBytes(bz[:])
		if d.Sign() > 0 && d.Cmp(secp256k1.S256().N) < 0 {
			return bz[:]
		}
	}
}

// NewPrivKeyFromBytes validates bz as a private key scalar.
func NewPrivKeyFromBytes(bz []byte) (*PrivKey, error) {
	if len(bz) != PrivKeySize {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid privkey size, expected %d, got %d", PrivKeySize, len(bz))
	}

	d := new(big.Int).SetBytes(bz)
	if d.Sign() == 0 || d.Cmp(secp256k1.S256().N) >= 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "private key is out of range")
	}

	return &PrivKey{Key: append([]byte(nil), bz...)}, nil
}

// Bytes returns a copy of the private key scalar.
func (privKey PrivKey) Bytes() []byte {
	return append([]byte(nil), privKey.Key...)
}

// PubKey returns the compressed public key.
func (privKey PrivKey) PubKey() cryptotypes.PubKey {
	pub := secp256k1.PrivKeyFromBytes(privKey.Key).PubKey()
	return &PubKey{Key: pub.SerializeCompressed()}
}

func (privKey PrivKey) Equals(other cryptotypes.LedgerPrivKey) bool {
	return privKey.Type() == other.Type() && subtle.ConstantTimeCompare(privKey.Bytes(), other.Bytes()) == 1
}

func (privKey PrivKey) Type() string {
	return KeyType
}

// String never prints key material.
func (privKey PrivKey) String() string {
	return "EthPrivKeySecp256k1{...}"
}

// Sign signs keccak256(msg) and returns r || s || v, where v is the
// recovery id in {27, 28}.
func (privKey PrivKey) Sign(msg []byte) ([]byte, error) {
	if len(privKey.Key) != PrivKeySize {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid privkey size, expected %d, got %d", PrivKeySize, len(privKey.Key))
	}

	priv := secp256k1.PrivKeyFromBytes(privKey.Key)
	sig := ecdsa.SignCompact(priv, Keccak256(msg), false)

	// SignCompact puts the recovery code first.
	return append(sig[1:], sig[0]), nil
}

var _ cryptotypes.PubKey = &PubKey{}

// NewPubKeyFromBytes accepts a compressed or uncompressed public key and
// returns it in compressed form.
func NewPubKeyFromBytes(key []byte) (*PubKey, error) {
	switch len(key) {
	case PubKeySize, UncompressedPubKeySize:
	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid pubkey size, expected %d, got %d", PubKeySize, len(key))
	}

	pub, err := secp256k1.ParsePubKey(key)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
	}

	return &PubKey{Key: pub.SerializeCompressed()}, nil
}

// Address returns the last 20 bytes of keccak256 over the uncompressed key.
// It panics on a malformed key.
func (pubKey PubKey) Address() crypto.Address {
	if len(pubKey.Key) != PubKeySize {
		panic("length of pubKey is incorrect")
	}

	pub, err := secp256k1.ParsePubKey(pubKey.Key)
	if err != nil {
		panic(err)
	}

	uncompressed := pub.SerializeUncompressed()
	return crypto.Address(Keccak256(uncompressed[1:])[12:])
}

func (pubKey PubKey) Bytes() []byte {
	return append([]byte(nil), pubKey.Key...)
}

func (pubKey PubKey) String() string {
	return fmt.Sprintf("EthPubKeySecp256k1{%X}", pubKey.Key)
}

func (pubKey PubKey) Type() string {
	return KeyType
}

func (pubKey PubKey) Equals(other cryptotypes.PubKey) bool {
	return pubKey.Type() == other.Type() && bytes.Equal(pubKey.Bytes(), other.Bytes())
}

// VerifySignature checks a 64 byte r || s or 65 byte r || s || v signature
// over keccak256(msg). High-S signatures are rejected.
func (pubKey PubKey) VerifySignature(msg, sig []byte) bool {
	if len(sig) == SignatureSize {
		sig = sig[:SignatureSize-1]
	}
	if len(sig) != 64 {
		return false
	}

	pub, err := secp256k1.ParsePubKey(pubKey.Key)
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	r.SetByteSlice(sig[:32])
	s.SetByteSlice(sig[32:])
	if s.IsOverHalfOrder() {
		return false
	}

	return ecdsa.NewSignature(&r, &s).Verify(Keccak256(msg), pub)
}

// Keccak256 returns the legacy keccak256 digest of bz.
func Keccak256(bz []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(bz)
	return hasher.Sum(nil)
}
