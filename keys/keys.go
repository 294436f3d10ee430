package keys

import (
	"crypto/ed25519"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/hexerr"
)

const (
	PublicKeySize = ed25519.PublicKeySize
	KeypairSize   = ed25519.PrivateKeySize
	SignatureSize = ed25519.SignatureSize
)

// PublicKey is an Ed25519 public key.
type PublicKey [PublicKeySize]byte

// Signature is an Ed25519 signature.
type Signature [SignatureSize]byte

// ParsePublicKey decodes a base58 public key.
func ParsePublicKey(s string) (PublicKey, *errors.Error) {
	var pk PublicKey
	if !decodeBase58(pk[:], s) || !onCurve(pk) {
		return PublicKey{}, errors.New(errors.KindInvalidBase58Ed25519PublicKey)
	}
	return pk, nil
}

// ParsePublicKeyHex decodes a hex public key.
func ParsePublicKeyHex(s string) (PublicKey, *errors.Error) {
	var pk PublicKey
	if err := hexerr.DecodeInto(pk[:], s); err != nil {
		return PublicKey{}, err
	}
	if !onCurve(pk) {
		return PublicKey{}, errors.New(errors.KindInvalidEd25519PublicKeyHex)
	}
	return pk, nil
}

// String returns the base58 form.
func (pk PublicKey) String() string { return base58.Encode(pk[:]) }

// IsZero reports whether pk is unset.
func (pk PublicKey) IsZero() bool { return pk == PublicKey{} }

func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PublicKey) UnmarshalText(text []byte) error {
	v, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = v
	return nil
}

// ParseSignature decodes a base58 signature.
func ParseSignature(s string) (Signature, *errors.Error) {
	var sig Signature
	if !decodeBase58(sig[:], s) {
		return Signature{}, errors.New(errors.KindInvalidBase58Ed25519Signature)
	}
	return sig, nil
}

// ParseSignatureHex decodes a hex signature.
func ParseSignatureHex(s string) (Signature, *errors.Error) {
	var sig Signature
	if err := hexerr.DecodeInto(sig[:], s); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

func (sig Signature) String() string { return base58.Encode(sig[:]) }

// IsZero reports whether sig is unset.
func (sig Signature) IsZero() bool { return sig == Signature{} }

func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.String()), nil
}

func (sig *Signature) UnmarshalText(text []byte) error {
	v, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*sig = v
	return nil
}

// Verify checks sig over msg. An unset key is MissingEd25519PublicKey, an
// unset signature MissingTxSignature, and a signature that does not match
// a Transaction error.
func Verify(pk PublicKey, msg []byte, sig Signature) *errors.Error {
	switch {
	case pk.IsZero():
		return errors.New(errors.KindMissingEd25519PublicKey)
	case sig.IsZero():
		return errors.New(errors.KindMissingTxSignature)
	case !ed25519.Verify(pk[:], msg, sig[:]):
		return errors.Transaction("signature verification failed for " + pk.String())
	}
	return nil
}

func decodeBase58(dst []byte, s string) bool {
	b, err := base58.Decode(s)
	if err != nil || len(b) != len(dst) {
		return false
	}
	copy(dst, b)
	return true
}

func onCurve(pk PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}
