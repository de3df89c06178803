package keyring

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/gaia-sdk-go/types"
)

// Wallet is a stored key. PrivKey only ever holds the encrypted form.
type Wallet struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	// PubKey is the base64 encoded public key bytes.
	PubKey string `json:"pub_key"`
	// PrivKey is the encrypted private key as produced by an Encrypter.
	PrivKey string `json:"priv_key"`
	// Algo is the signature scheme of the key, e.g. secp256k1.
	Algo string `json:"algo"`
}

// KeyDAO persists wallets. It is implemented by the host application.
type KeyDAO interface {
	Write(name string, wallet Wallet) error
	Read(name string) (Wallet, error)
}

// Deleter is implemented by a KeyDAO that can remove wallets.
type Deleter interface {
	Delete(name string) error
}

// Encrypter is implemented by a KeyDAO that encrypts private keys itself.
type Encrypter interface {
	Encrypt(privKey, password string) (string, error)
}

// Decrypter is implemented by a KeyDAO that decrypts private keys itself.
type Decrypter interface {
	Decrypt(encrypted, password string) (string, error)
}

const notImplementedMsg = "no key storage configured, supply a KeyDAO implementation"

var (
	_ KeyDAO    = DefaultKeyDAO{}
	_ Deleter   = DefaultKeyDAO{}
	_ Encrypter = DefaultKeyDAO{}
	_ Decrypter = DefaultKeyDAO{}
)

// DefaultKeyDAO has no storage; Write, Read and Delete report
// ErrNotImplemented. It provides the default authenticated encryption.
type DefaultKeyDAO struct {
	ScryptN int
	ScryptP int
}

// NewDefaultKeyDAO uses the light scrypt parameters.
func NewDefaultKeyDAO() DefaultKeyDAO {
	return DefaultKeyDAO{ScryptN: LightScryptN, ScryptP: LightScryptP}
}

func (DefaultKeyDAO) Write(string, Wallet) error {
	return errorsmod.Wrap(types.ErrNotImplemented, notImplementedMsg)
}

func (DefaultKeyDAO) Read(string) (Wallet, error) {
	return Wallet{}, errorsmod.Wrap(types.ErrNotImplemented, notImplementedMsg)
}

func (DefaultKeyDAO) Delete(string) error {
	return errorsmod.Wrap(types.ErrNotImplemented, notImplementedMsg)
}

func (d DefaultKeyDAO) Encrypt(privKey, password string) (string, error) {
	if privKey == "" {
		return "", errorsmod.Wrap(types.ErrInvalidArgument, "private key can not be empty")
	}

	n, p := d.ScryptN, d.ScryptP
	if n == 0 {
		n = LightScryptN
	}
	if p == 0 {
		p = LightScryptP
	}

	encrypted, err := EncryptData([]byte(privKey), []byte(password), n, p)
	if err != nil {
		return "", errorsmod.Wrap(types.ErrEncryptionFailed, err.Error())
	}
	if encrypted == "" {
		return "", errorsmod.Wrap(types.ErrEncryptionFailed, "private key encrypt failed")
	}

	return encrypted, nil
}

func (DefaultKeyDAO) Decrypt(encrypted, password string) (string, error) {
	plain, err := DecryptData(encrypted, password)
	if err != nil {
		return "", err
	}

	return string(plain), nil
}

// Keystore is a KeyDAO completed with the default encryption where the
// host does not supply its own. Encrypt and Decrypt are chosen
// independently.
type Keystore struct {
	dao       KeyDAO
	encrypter Encrypter
	decrypter Decrypter
	deleter   Deleter
}

// NewKeystore wraps dao. A nil dao is replaced by DefaultKeyDAO.
func NewKeystore(dao KeyDAO) *Keystore {
	fallback := NewDefaultKeyDAO()
	if dao == nil {
		dao = fallback
	}

	ks := &Keystore{dao: dao, encrypter: fallback, decrypter: fallback}
	if e, ok := dao.(Encrypter); ok {
		ks.encrypter = e
	}
	if d, ok := dao.(Decrypter); ok {
		ks.decrypter = d
	}
	if d, ok := dao.(Deleter); ok {
		ks.deleter = d
	}

	return ks
}

func (k *Keystore) Write(name string, wallet Wallet) error {
	if name == "" {
		return errorsmod.Wrap(types.ErrInvalidArgument, "key name can not be empty")
	}

	return k.dao.Write(name, wallet)
}

func (k *Keystore) Read(name string) (Wallet, error) {
	if name == "" {
		return Wallet{}, errorsmod.Wrap(types.ErrInvalidArgument, "key name can not be empty")
	}

	return k.dao.Read(name)
}

// Delete removes a wallet, or reports ErrNotImplemented when the host DAO
// cannot delete.
func (k *Keystore) Delete(name string) error {
	if k.deleter == nil {
		return errorsmod.Wrap(types.ErrNotImplemented, "key storage does not support delete")
	}

	return k.deleter.Delete(name)
}

func (k *Keystore) Encrypt(privKey, password string) (string, error) {
	return k.encrypter.Encrypt(privKey, password)
}

func (k *Keystore) Decrypt(encrypted, password string) (string, error) {
	return k.decrypter.Decrypt(encrypted, password)
}
