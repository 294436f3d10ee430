package keys

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/mr-tron/base58"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/hexerr"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/jsonerr"
	"github.com/kbukum/faultline/logger"
)

// Keypair is an Ed25519 seed followed by its public key.
type Keypair [KeypairSize]byte

// GenerateKeypair creates a keypair from crypto/rand.
func GenerateKeypair() (Keypair, *errors.Error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, ioerr.Translate(err)
	}
	var kp Keypair
	copy(kp[:], priv)
	return kp, nil
}

// KeypairFromSeed derives the keypair for a 32-byte seed.
func KeypairFromSeed(seed []byte) (Keypair, *errors.Error) {
	if len(seed) != ed25519.SeedSize {
		return Keypair{}, errors.New(errors.KindInvalidStringLength)
	}
	var kp Keypair
	copy(kp[:], ed25519.NewKeyFromSeed(seed))
	return kp, nil
}

// ParseKeypair decodes a base58 keypair. The public half must match the
// seed.
func ParseKeypair(s string) (Keypair, *errors.Error) {
	var kp Keypair
	if !decodeBase58(kp[:], s) || !kp.consistent() {
		return Keypair{}, errors.New(errors.KindInvalidBase58Ed25519SecretKey)
	}
	return kp, nil
}

// ParseKeypairHex decodes a hex keypair.
func ParseKeypairHex(s string) (Keypair, *errors.Error) {
	var kp Keypair
	if err := hexerr.DecodeInto(kp[:], s); err != nil {
		return Keypair{}, err
	}
	if !kp.consistent() {
		return Keypair{}, errors.New(errors.KindInvalidBase58Ed25519SecretKey)
	}
	return kp, nil
}

// PublicKey returns the public half.
func (kp Keypair) PublicKey() PublicKey {
	var pk PublicKey
	copy(pk[:], kp[ed25519.SeedSize:])
	return pk
}

// Sign signs msg.
func (kp Keypair) Sign(msg []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(kp[:]), msg))
	return sig
}

// String returns the base58 form of the whole keypair.
func (kp Keypair) String() string { return base58.Encode(kp[:]) }

func (kp Keypair) consistent() bool {
	derived := ed25519.NewKeyFromSeed(kp[:ed25519.SeedSize])
	return bytes.Equal(derived[ed25519.SeedSize:], kp[ed25519.SeedSize:])
}

// DefaultKeypairPath is the keypair location under the home directory.
func DefaultKeypairPath() (string, *errors.Error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New(errors.KindHomeDirectoryNotFound)
	}
	return filepath.Join(home, ".config", "faultline", "id.json"), nil
}

// LoadKeypair reads a keypair file. An empty path means DefaultKeypairPath.
// A missing file is MissingKeypair; other read failures are I/O errors.
func LoadKeypair(path string) (Keypair, *errors.Error) {
	if path == "" {
		var err *errors.Error
		if path, err = DefaultKeypairPath(); err != nil {
			return Keypair{}, err
		}
	}
	if !utf8.ValidString(path) {
		return Keypair{}, errors.New(errors.KindPathIsNotValidUTF8)
	}

	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Keypair{}, errors.New(errors.KindMissingKeypair)
	}
	if err != nil {
		return Keypair{}, ioerr.Translate(err)
	}

	kp, perr := decodeKeypairFile(bytes.TrimSpace(data))
	if perr != nil {
		logger.Get("keys").WithFault(perr).Debug("keypair file rejected", logger.Fields("path", path))
		return Keypair{}, perr
	}
	return kp, nil
}

// SaveKeypair writes kp as a JSON byte array readable only by the owner.
func SaveKeypair(path string, kp Keypair) *errors.Error {
	if !utf8.ValidString(path) {
		return errors.New(errors.KindPathIsNotValidUTF8)
	}
	values := make([]int, len(kp))
	for i, b := range kp {
		values[i] = int(b)
	}
	data, jerr := jsonerr.Marshal(values)
	if jerr != nil {
		return jerr
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ioerr.Translate(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return ioerr.Translate(err)
	}
	return nil
}

func decodeKeypairFile(data []byte) (Keypair, *errors.Error) {
	if !bytes.HasPrefix(data, []byte("[")) {
		return ParseKeypair(string(data))
	}
	var values []int
	if err := jsonerr.Unmarshal(data, &values); err != nil {
		return Keypair{}, err
	}
	if len(values) != KeypairSize {
		return Keypair{}, errors.New(errors.KindInvalidStringLength)
	}
	var kp Keypair
	for i, v := range values {
		if v < 0 || v > 0xff {
			return Keypair{}, errors.New(errors.KindInvalidBase58Ed25519SecretKey)
		}
		kp[i] = byte(v)
	}
	if !kp.consistent() {
		return Keypair{}, errors.New(errors.KindInvalidBase58Ed25519SecretKey)
	}
	return kp, nil
}
