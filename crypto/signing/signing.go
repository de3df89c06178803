package signing

import (
	"sort"
	"sync"

	errorsmod "cosmossdk.io/errors"
	metrics "github.com/hashicorp/go-metrics"

	cryptotypes "github.com/cosmos/cosmos-sdk/crypto/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/initia-labs/gaia-sdk-go/tx"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Scheme is a signature algorithm over raw private key bytes.
type Scheme interface {
	// Name is the key algorithm name, e.g. secp256k1.
	Name() string
	// PrivKey validates privKey and returns it as an SDK private key.
	PrivKey(privKey []byte) (cryptotypes.PrivKey, error)
}

var (
	mu      sync.RWMutex
	schemes = map[string]Scheme{}
)

func init() {
	Register(Secp256k1)
	Register(Ed25519)
	Register(EthSecp256k1)
}

// Register makes a scheme available by name. It panics when the name is
// already taken.
func Register(s Scheme) {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := schemes[s.Name()]; ok {
		panic("signing: scheme " + s.Name() + " is already registered")
	}
	schemes[s.Name()] = s
}

// Lookup returns the scheme registered under name.
func Lookup(name string) (Scheme, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := schemes[name]
	if !ok {
		return nil, errorsmod.Wrap(types.ErrSignatureSchemeUnsupported, name)
	}

	return s, nil
}

// Schemes returns the registered scheme names in sorted order.
func Schemes() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// PubKey derives the public key of privKey under scheme.
func PubKey(privKey []byte, scheme string) (cryptotypes.PubKey, error) {
	key, err := privKeyFor(privKey, scheme)
	if err != nil {
		return nil, err
	}

	return key.PubKey(), nil
}

// SignBytes signs msg with privKey under scheme.
func SignBytes(msg, privKey []byte, scheme string) ([]byte, error) {
	key, err := privKeyFor(privKey, scheme)
	if err != nil {
		return nil, err
	}

	defer metrics.MeasureSinceWithLabels([]string{"gaiasdk", "tx", "sign"}, timeNow(), []metrics.Label{
		{Name: "scheme", Value: scheme},
	})

	sig, err := key.Sign(msg)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "failed to sign: %s", err)
	}

	return sig, nil
}

// Sign signs the canonical encoding of doc. Neither doc nor privKey are
// retained.
func Sign(doc *txtypes.SignDoc, privKey []byte, scheme string) ([]byte, error) {
	bz, err := tx.SignBytes(doc)
	if err != nil {
		return nil, err
	}

	return SignBytes(bz, privKey, scheme)
}

func privKeyFor(privKey []byte, scheme string) (cryptotypes.PrivKey, error) {
	s, err := Lookup(scheme)
	if err != nil {
		return nil, err
	}
	if len(privKey) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "private key can not be empty")
	}

	return s.PrivKey(privKey)
}
