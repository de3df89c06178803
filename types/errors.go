package types

import (
	errorsmod "cosmossdk.io/errors"
)

// RootCodespace is the codespace for all errors defined in this library.
const RootCodespace = "gaiasdk"

// gaia sdk sentinel errors
var (
	ErrInvalidArgument            = errorsmod.Register(RootCodespace, 2, "invalid argument")
	ErrUnsupportedType            = errorsmod.Register(RootCodespace, 3, "unsupported type")
	ErrEncryptionFailed           = errorsmod.Register(RootCodespace, 4, "private key encryption failed")
	ErrInvalidPassword            = errorsmod.Register(RootCodespace, 5, "wrong password")
	ErrNotImplemented             = errorsmod.Register(RootCodespace, 6, "method not implemented")
	ErrSignatureSchemeUnsupported = errorsmod.Register(RootCodespace, 7, "signature scheme not supported")
	ErrKeyNotFound                = errorsmod.Register(RootCodespace, 8, "key not found")
	ErrKeyExists                  = errorsmod.Register(RootCodespace, 9, "key already exists")
	ErrTxFailed                   = errorsmod.Register(RootCodespace, 10, "transaction failed")
	ErrQueryFailed                = errorsmod.Register(RootCodespace, 11, "query failed")
	ErrInvalidConfig              = errorsmod.Register(RootCodespace, 12, "invalid client config")
)
