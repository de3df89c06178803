package ethsecp256k1

import (
	errorsmod "cosmossdk.io/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/initia-labs/gaia-sdk-go/types"
)

const (
	// PubKeyTypeURL is the Any type URL of PubKey.
	PubKeyTypeURL = "/" + pubKeyMessageName
	// PrivKeyTypeURL is the Any type URL of PrivKey.
	PrivKeyTypeURL = "/" + privKeyMessageName

	pubKeyMessageName  = "initia.crypto.v1beta1.ethsecp256k1.PubKey"
	privKeyMessageName = "initia.crypto.v1beta1.ethsecp256k1.PrivKey"
)

// PubKey is a compressed secp256k1 public key whose address and signatures
// follow Ethereum conventions.
//
//	message PubKey { bytes key = 1; }
type PubKey struct {
	Key []byte `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
}

// PrivKey is a secp256k1 private key scalar.
//
//	message PrivKey { bytes key = 1; }
type PrivKey struct {
	Key []byte `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *PubKey) Reset() { *m = PubKey{} }
func (*PubKey) ProtoMessage() {}
func (*PubKey) XXX_MessageName() string { return pubKeyMessageName }
func (m *PubKey) Size() int { return keySize(m.Key) }
func (m *PubKey) Marshal() ([]byte, error) { return marshalKey(m.Key), nil }
func (m *PubKey) Unmarshal(bz []byte) error { return unmarshalKey(bz, &m.Key) }

func (m *PrivKey) Reset() { *m = PrivKey{} }
func (*PrivKey) ProtoMessage() {}
func (*PrivKey) XXX_MessageName() string { return privKeyMessageName }
func (m *PrivKey) Size() int { return keySize(m.Key) }
func (m *PrivKey) Marshal() ([]byte, error) { return marshalKey(m.Key), nil }
func (m *PrivKey) Unmarshal(bz []byte) error { return unmarshalKey(bz, &m.Key) }

func keySize(key []byte) int {
	if len(key) == 0 {
		return 0
	}

	return protowire.SizeTag(1) + protowire.SizeBytes(len(key))
}

func marshalKey(key []byte) []byte {
	bz := make([]byte, 0, keySize(key))
	if len(key) == 0 {
		return bz
	}

	bz = protowire.AppendTag(bz, 1, protowire.BytesType)
	return protowire.AppendBytes(bz, key)
}

// unmarshalKey reads field 1 and skips unknown fields.
func unmarshalKey(bz []byte, key *[]byte) error {
	*key = nil
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return errorsmod.Wrap(types.ErrInvalidArgument, protowire.ParseError(n).Error())
		}
		bz = bz[n:]

		if num == 1 {
			if typ != protowire.BytesType {
				return errorsmod.Wrapf(types.ErrInvalidArgument, "wrong wire type %d for field key", typ)
			}

			v, n := protowire.ConsumeBytes(bz)
			if n < 0 {
				return errorsmod.Wrap(types.ErrInvalidArgument, protowire.ParseError(n).Error())
			}
			*key = append([]byte(nil), v...)
			bz = bz[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, bz)
		if n < 0 {
			return errorsmod.Wrap(types.ErrInvalidArgument, protowire.ParseError(n).Error())
		}
		bz = bz[n:]
	}

	return nil
}
