package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cast"
	"github.com/xdg-go/pbkdf2"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/sha3"

	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	kdfScrypt = "scrypt"
	kdfPBKDF2 = "pbkdf2"
	cipherAES = "aes-128-ctr"

	// StandardScryptN and StandardScryptP use 256MB of memory and about a
	// second of CPU time.
	StandardScryptN = 1 << 18
	StandardScryptP = 1

	// LightScryptN and LightScryptP use 4MB of memory and about 100ms of
	// CPU time.
	LightScryptN = 1 << 12
	LightScryptP = 6

	scryptR     = 8
	scryptDKLen = 32
)

// cryptoJSON is the envelope of an encrypted key.
type cryptoJSON struct {
	Cipher     string         `json:"cipher"`
	CipherText string         `json:"ciphertext"`
	IV         string         `json:"iv"`
	KDF        string         `json:"kdf"`
	KDFParams  map[string]any `json:"kdfparams"`
	MAC        string         `json:"mac"`
}

// EncryptData encrypts data under a scrypt derived key with AES-128-CTR and
// authenticates the ciphertext with keccak256(key[16:32] || ciphertext).
// The result is a JSON envelope.
func EncryptData(data, auth []byte, scryptN, scryptP int) (string, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	derivedKey, err := scrypt.Key(auth, salt, scryptN, scryptR, scryptP, scryptDKLen)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	cipherText, err := aesCTRXOR(derivedKey[:16], data, iv)
	if err != nil {
		return "", err
	}

	bz, err := json.Marshal(cryptoJSON{
		Cipher:     cipherAES,
		CipherText: hex.EncodeToString(cipherText),
		IV:         hex.EncodeToString(iv),
		KDF:        kdfScrypt,
		KDFParams: map[string]any{
			"n":     scryptN,
			"r":     scryptR,
			"p":     scryptP,
			"dklen": scryptDKLen,
			"salt":  hex.EncodeToString(salt),
		},
		MAC: hex.EncodeToString(keccak256(derivedKey[16:32], cipherText)),
	})
	if err != nil {
		return "", err
	}

	return string(bz), nil
}

// DecryptData opens an envelope produced by EncryptData. A wrong password
// is detected by the MAC and reported as ErrInvalidPassword.
func DecryptData(envelope, auth string) ([]byte, error) {
	var c cryptoJSON
	if err := json.Unmarshal([]byte(envelope), &c); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "malformed encrypted key: %s", err)
	}
	if c.Cipher != cipherAES {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "cipher not supported: %q", c.Cipher)
	}

	mac, err := hex.DecodeString(c.MAC)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed mac")
	}
	iv, err := hex.DecodeString(c.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed iv")
	}
	cipherText, err := hex.DecodeString(c.CipherText)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed ciphertext")
	}

	derivedKey, err := kdfKey(c, []byte(auth))
	if err != nil {
		return nil, err
	}

	if !hmac.Equal(keccak256(derivedKey[16:32], cipherText), mac) {
		return nil, errorsmod.Wrap(types.ErrInvalidPassword, "could not decrypt key with given password")
	}

	return aesCTRXOR(derivedKey[:16], cipherText, iv)
}

func kdfKey(c cryptoJSON, auth []byte) ([]byte, error) {
	salt, err := hex.DecodeString(cast.ToString(c.KDFParams["salt"]))
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed kdf salt")
	}

	dkLen, err := cast.ToIntE(c.KDFParams["dklen"])
	if err != nil || dkLen < 32 {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed kdf dklen")
	}

	switch c.KDF {
	case kdfScrypt:
		n, errN := cast.ToIntE(c.KDFParams["n"])
		r, errR := cast.ToIntE(c.KDFParams["r"])
		p, errP := cast.ToIntE(c.KDFParams["p"])
		if errN != nil || errR != nil || errP != nil {
			return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed scrypt params")
		}

		key, err := scrypt.Key(auth, salt, n, r, p, dkLen)
		if err != nil {
			return nil, errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
		}
		return key, nil

	case kdfPBKDF2:
		iter, err := cast.ToIntE(c.KDFParams["c"])
		if err != nil || iter <= 0 {
			return nil, errorsmod.Wrap(types.ErrInvalidArgument, "malformed pbkdf2 iteration count")
		}
		if prf := cast.ToString(c.KDFParams["prf"]); prf != "hmac-sha256" {
			return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "unsupported pbkdf2 prf %q", prf)
		}

		return pbkdf2.Key(auth, salt, iter, dkLen, sha256.New), nil

	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "unsupported kdf %q", c.KDF)
	}
}

func aesCTRXOR(key, in, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

func keccak256(data ...[]byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hasher.Write(b)
	}
	return hasher.Sum(nil)
}
