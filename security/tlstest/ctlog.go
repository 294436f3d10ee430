package tlstest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	"path/filepath"
	"testing"
	"time"
)

// CTLog is a throwaway certificate transparency log that can sign SCTs.
type CTLog struct {
	Key *ecdsa.PrivateKey
	// ID is the SHA-256 digest of the DER public key.
	ID [32]byte
	// KeyFile is the path to the PEM-encoded public key.
	KeyFile string
}

// GenerateCTLog creates a P-256 log key and writes its public key to a PEM file.
func GenerateCTLog(t testing.TB) *CTLog {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: generate log key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("tlstest: marshal log key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ctlog.pem")
	writePEM(t, path, "PUBLIC KEY", der)
	return &CTLog{Key: key, ID: sha256.Sum256(der), KeyFile: path}
}

// SignSCT returns a serialized v1 SCT over certDER issued at ts.
func (l *CTLog) SignSCT(t testing.TB, certDER []byte, ts time.Time) []byte {
	t.Helper()
	millis := uint64(ts.UnixMilli())

	signed := []byte{0, 0} // v1, certificate_timestamp
	signed = binary.BigEndian.AppendUint64(signed, millis)
	signed = append(signed, 0, 0) // x509_entry
	n := len(certDER)
	signed = append(signed, byte(n>>16), byte(n>>8), byte(n))
	signed = append(signed, certDER...)
	signed = append(signed, 0, 0) // no extensions

	digest := sha256.Sum256(signed)
	sig, err := ecdsa.SignASN1(rand.Reader, l.Key, digest[:])
	if err != nil {
		t.Fatalf("tlstest: sign sct: %v", err)
	}

	out := []byte{0}
	out = append(out, l.ID[:]...)
	out = binary.BigEndian.AppendUint64(out, millis)
	out = append(out, 0, 0) // extensions
	out = append(out, 4, 3) // sha256, ecdsa
	out = binary.BigEndian.AppendUint16(out, uint16(len(sig)))
	return append(out, sig...)
}
