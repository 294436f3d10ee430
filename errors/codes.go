package errors

import "fmt"

// Kind is the discriminant of an Error.
//
// The numeric value is the binary wire discriminant. New kinds are only ever
// appended; reordering or removing one breaks every encoded value in the wild.
type Kind uint32

const (
	KindMissingEd25519PublicKey Kind = iota
	KindMissingKeypair
	KindMissingTxSignature
	KindHomeDirectoryNotFound
	KindPathIsNotValidUTF8
	KindInvalidUTF8
	KindInvalidBase58Ed25519SecretKey
	KindInvalidBase58Ed25519PublicKey
	KindInvalidBase58Ed25519Signature
	KindRepoCreatePermissionDenied
	KindRepoAlreadyExists
	KindIO
	KindInvalidByteToUTF8StringConversion
	KindInvalidEd25519PublicKeyHex
	KindInvalidHexCharacter
	KindOddLength
	KindInvalidStringLength
	KindStore
	KindAccountNotFound
	KindUnableToDeserializeAccountInfo
	KindUnableToSerializeTx
	KindTLS
	KindTransaction
	KindHTTP
	KindJSONRPC
	KindSerialization
	KindUnspecified

	kindCount
)

var kindNames = [...]string{
	KindMissingEd25519PublicKey:           "MissingEd25519PublicKey",
	KindMissingKeypair:                    "MissingKeypair",
	KindMissingTxSignature:                "MissingTxSignature",
	KindHomeDirectoryNotFound:             "HomeDirectoryNotFound",
	KindPathIsNotValidUTF8:                "PathIsNotValidUtf8",
	KindInvalidUTF8:                       "InvalidUtf8",
	KindInvalidBase58Ed25519SecretKey:     "InvalidBase58Ed25519SecretKey",
	KindInvalidBase58Ed25519PublicKey:     "InvalidBase58Ed25519PublicKey",
	KindInvalidBase58Ed25519Signature:     "InvalidBase58Ed25519Signature",
	KindRepoCreatePermissionDenied:        "RepoCreatePermissionDenied",
	KindRepoAlreadyExists:                 "RepoAlreadyExists",
	KindIO:                                "IoErr",
	KindInvalidByteToUTF8StringConversion: "InvalidByteToUtf8StringConversion",
	KindInvalidEd25519PublicKeyHex:        "InvalidEd25519PublicKeyHex",
	KindInvalidHexCharacter:               "InvalidHexCharacter",
	KindOddLength:                         "OddLength",
	KindInvalidStringLength:               "InvalidStringLength",
	KindStore:                             "Store",
	KindAccountNotFound:                   "AccountNotFound",
	KindUnableToDeserializeAccountInfo:    "UnableToDeserializeAccountInfo",
	KindUnableToSerializeTx:               "UnableToSerializeTx",
	KindTLS:                               "Tls",
	KindTransaction:                       "Tx",
	KindHTTP:                              "Http",
	KindJSONRPC:                           "JsonRpc",
	KindSerialization:                     "Serialization",
	KindUnspecified:                       "Unspecified",
}

// String returns the structured-encoding tag of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return k < kindCount }

// ParseKind resolves a structured-encoding tag back to its Kind.
func ParseKind(tag string) (Kind, bool) {
	k, ok := kindByName[tag]
	return k, ok
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for i, name := range kindNames {
		m[name] = Kind(i)
	}
	return m
}()

// Kinds returns every declared kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// kindMessages is the human text used by Error() for each kind.
var kindMessages = [...]string{
	KindMissingEd25519PublicKey:           "missing ed25519 public key",
	KindMissingKeypair:                    "missing keypair",
	KindMissingTxSignature:                "missing transaction signature",
	KindHomeDirectoryNotFound:             "home directory not found",
	KindPathIsNotValidUTF8:                "path is not valid UTF-8",
	KindInvalidUTF8:                       "invalid UTF-8",
	KindInvalidBase58Ed25519SecretKey:     "invalid base58 ed25519 secret key",
	KindInvalidBase58Ed25519PublicKey:     "invalid base58 ed25519 public key",
	KindInvalidBase58Ed25519Signature:     "invalid base58 ed25519 signature",
	KindRepoCreatePermissionDenied:        "permission denied creating repository",
	KindRepoAlreadyExists:                 "repository already exists",
	KindIO:                                "i/o error",
	KindInvalidByteToUTF8StringConversion: "bytes are not a valid UTF-8 string",
	KindInvalidEd25519PublicKeyHex:        "invalid ed25519 public key hex",
	KindInvalidHexCharacter:               "invalid hex character",
	KindOddLength:                         "odd number of hex digits",
	KindInvalidStringLength:               "hex string length does not match target",
	KindStore:                             "store error",
	KindAccountNotFound:                   "account not found",
	KindUnableToDeserializeAccountInfo:    "unable to deserialize account info",
	KindUnableToSerializeTx:               "unable to serialize transaction",
	KindTLS:                               "tls error",
	KindTransaction:                       "transaction error",
	KindHTTP:                              "http error",
	KindJSONRPC:                           "json-rpc error",
	KindSerialization:                     "serialization error",
	KindUnspecified:                       "unspecified error",
}
