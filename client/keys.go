package client

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/cosmos/cosmos-sdk/types/bech32"

	"github.com/initia-labs/gaia-sdk-go/crypto/hd"
	"github.com/initia-labs/gaia-sdk-go/crypto/keyring"
	"github.com/initia-labs/gaia-sdk-go/crypto/signing"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Keys manages the keys of the key store. Private keys are only ever
// handed to the store in encrypted form.
type Keys struct {
	c *Client
}

// KeyInfo is the public part of a stored key.
type KeyInfo struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	// PubKey is the base64 encoded public key.
	PubKey string `json:"pub_key" yaml:"pub_key"`
	Algo   string `json:"algo" yaml:"algo"`
	// EthAddress is the EIP-55 address of eth_secp256k1 keys.
	EthAddress string `json:"eth_address,omitempty" yaml:"eth_address,omitempty"`
}

// Add creates a key from a fresh mnemonic and returns the mnemonic with it.
func (k Keys) Add(name, password, algo string) (KeyInfo, string, error) {
	mnemonic, err := hd.NewMnemonic()
	if err != nil {
		return KeyInfo{}, "", err
	}

	info, err := k.Recover(name, password, mnemonic, algo, "")
	if err != nil {
		return KeyInfo{}, "", err
	}

	return info, mnemonic, nil
}

// Recover derives a key from mnemonic at hdPath, the default path of algo
// when empty.
func (k Keys) Recover(name, password, mnemonic, algo, hdPath string) (KeyInfo, error) {
	signAlgo, err := hd.AlgoFromString(algo)
	if err != nil {
		return KeyInfo{}, err
	}

	privKey, err := hd.DerivePrivKey(signAlgo, mnemonic, "", hdPath)
	if err != nil {
		return KeyInfo{}, err
	}

	return k.store(name, password, privKey.Bytes(), algo)
}

// Import stores a hex encoded private key.
func (k Keys) Import(name, password, privKeyHex, algo string) (KeyInfo, error) {
	privKey, err := hex.DecodeString(strings.TrimPrefix(privKeyHex, "0x"))
	if err != nil {
		return KeyInfo{}, errorsmod.Wrap(types.ErrInvalidArgument, "private key is not hex")
	}
	defer wipe(privKey)

	return k.store(name, password, privKey, algo)
}

// Export returns the hex encoded private key of name.
func (k Keys) Export(name, password string) (string, error) {
	s, err := k.c.loadSigner(name, password)
	if err != nil {
		return "", err
	}
	defer s.wipe()

	return hex.EncodeToString(s.privKey), nil
}

// Delete removes name after checking password.
func (k Keys) Delete(name, password string) error {
	wallet, err := k.c.keystore.Read(name)
	if err != nil {
		return err
	}
	if _, err := k.c.keystore.Decrypt(wallet.PrivKey, password); err != nil {
		return err
	}

	return k.c.keystore.Delete(name)
}

func (k Keys) Show(name string) (KeyInfo, error) {
	wallet, err := k.c.keystore.Read(name)
	if err != nil {
		return KeyInfo{}, err
	}

	return keyInfo(wallet)
}

func (k Keys) store(name, password string, privKey []byte, algo string) (KeyInfo, error) {
	if name == "" {
		return KeyInfo{}, errorsmod.Wrap(types.ErrInvalidArgument, "key name can not be empty")
	}
	if password == "" {
		return KeyInfo{}, errorsmod.Wrap(types.ErrInvalidArgument, "password can not be empty")
	}

	if _, err := k.c.keystore.Read(name); err == nil {
		return KeyInfo{}, errorsmod.Wrap(types.ErrKeyExists, name)
	} else if !errors.Is(err, types.ErrKeyNotFound) {
		return KeyInfo{}, err
	}

	pubKey, err := signing.PubKey(privKey, algo)
	if err != nil {
		return KeyInfo{}, err
	}

	address, err := k.c.accAddress(pubKey.Address())
	if err != nil {
		return KeyInfo{}, err
	}

	encrypted, err := k.c.keystore.Encrypt(hex.EncodeToString(privKey), password)
	if err != nil {
		return KeyInfo{}, err
	}

	wallet := keyring.Wallet{
		Name:    name,
		Address: address,
		PubKey:  base64.StdEncoding.EncodeToString(pubKey.Bytes()),
		PrivKey: encrypted,
		Algo:    algo,
	}
	if err := k.c.keystore.Write(name, wallet); err != nil {
		return KeyInfo{}, err
	}

	k.c.logger.Debug("key stored", "name", name, "address", address, "algo", algo)
	return keyInfo(wallet)
}

func keyInfo(wallet keyring.Wallet) (KeyInfo, error) {
	info := KeyInfo{
		Name:    wallet.Name,
		Address: wallet.Address,
		PubKey:  wallet.PubKey,
		Algo:    wallet.Algo,
	}
	if wallet.Algo != signing.EthSecp256k1Name {
		return info, nil
	}

	_, bz, err := bech32.DecodeAndConvert(wallet.Address)
	if err != nil {
		return KeyInfo{}, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid stored address %s: %s", wallet.Address, err)
	}
	info.EthAddress = common.BytesToAddress(bz).Hex()

	return info, nil
}

func wipe(bz []byte) {
	for i := range bz {
		bz[i] = 0
	}
}
