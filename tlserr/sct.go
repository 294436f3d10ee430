package tlserr

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/binary"
	stderrors "errors"
	"time"

	"github.com/kbukum/faultline/errors"
)

// Failures reported by VerifySCT.
var (
	ErrMalformedSCT          = stderrors.New("sct: malformed")
	ErrInvalidSCTSignature   = stderrors.New("sct: invalid signature")
	ErrSCTTimestampInFuture  = stderrors.New("sct: timestamp in future")
	ErrUnsupportedSCTVersion = stderrors.New("sct: unsupported version")
	ErrUnknownLog            = stderrors.New("sct: unknown log")
)

const (
	sctVersionV1     = 0
	sctHeaderLength  = 1 + 32 + 8 + 2
	hashSHA256       = 4
	signatureRSA     = 1
	signatureECDSA   = 3
	maxCertDERLength = 1<<24 - 1
)

// Log is a certificate transparency log trusted to issue timestamps.
type Log struct {
	Description string
	// ID is the SHA-256 digest of the log's DER-encoded public key.
	ID  [32]byte
	Key crypto.PublicKey
}

// NewLog builds a Log from its public key, deriving the log ID.
func NewLog(description string, key crypto.PublicKey) (*Log, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, err
	}
	return &Log{Description: description, ID: sha256.Sum256(der), Key: key}, nil
}

// SCTKind maps a VerifySCT failure to its category.
func SCTKind(err error) (errors.SCTError, bool) {
	switch {
	case stderrors.Is(err, ErrMalformedSCT):
		return errors.SCTMalformed, true
	case stderrors.Is(err, ErrInvalidSCTSignature):
		return errors.SCTInvalidSignature, true
	case stderrors.Is(err, ErrSCTTimestampInFuture):
		return errors.SCTTimestampInFuture, true
	case stderrors.Is(err, ErrUnsupportedSCTVersion):
		return errors.SCTUnsupportedVersion, true
	case stderrors.Is(err, ErrUnknownLog):
		return errors.SCTUnknownLog, true
	}
	return 0, false
}

type sct struct {
	logID      [32]byte
	timestamp  uint64
	extensions []byte
	hashAlg    uint8
	sigAlg     uint8
	signature  []byte
}

func parseSCT(data []byte) (*sct, error) {
	if len(data) == 0 {
		return nil, ErrMalformedSCT
	}
	if data[0] != sctVersionV1 {
		return nil, ErrUnsupportedSCTVersion
	}
	if len(data) < sctHeaderLength {
		return nil, ErrMalformedSCT
	}
	s := &sct{}
	copy(s.logID[:], data[1:33])
	s.timestamp = binary.BigEndian.Uint64(data[33:41])
	rest := data[41:]

	extLen := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) < extLen {
		return nil, ErrMalformedSCT
	}
	s.extensions, rest = rest[:extLen], rest[extLen:]

	if len(rest) < 4 {
		return nil, ErrMalformedSCT
	}
	s.hashAlg, s.sigAlg = rest[0], rest[1]
	sigLen := int(binary.BigEndian.Uint16(rest[2:]))
	rest = rest[4:]
	if len(rest) != sigLen {
		return nil, ErrMalformedSCT
	}
	s.signature = rest
	return s, nil
}

// signedData is the digitally-signed structure of an X.509 entry.
func (s *sct) signedData(certDER []byte) []byte {
	out := make([]byte, 0, 12+3+len(certDER)+2+len(s.extensions))
	out = append(out, sctVersionV1, 0) // certificate_timestamp
	out = binary.BigEndian.AppendUint64(out, s.timestamp)
	out = append(out, 0, 0) // x509_entry
	n := len(certDER)
	out = append(out, byte(n>>16), byte(n>>8), byte(n))
	out = append(out, certDER...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(s.extensions)))
	return append(out, s.extensions...)
}

// VerifySCT checks one serialized v1 SCT for certDER against logs and
// returns the index of the issuing log.
func VerifySCT(certDER, data []byte, now time.Time, logs []*Log) (int, error) {
	s, err := parseSCT(data)
	if err != nil {
		return -1, err
	}
	idx := -1
	for i, l := range logs {
		if l.ID == s.logID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return -1, ErrUnknownLog
	}
	if len(certDER) > maxCertDERLength || s.hashAlg != hashSHA256 {
		return -1, ErrInvalidSCTSignature
	}
	digest := sha256.Sum256(s.signedData(certDER))
	switch key := logs[idx].Key.(type) {
	case *ecdsa.PublicKey:
		if s.sigAlg != signatureECDSA || !ecdsa.VerifyASN1(key, digest[:], s.signature) {
			return -1, ErrInvalidSCTSignature
		}
	case *rsa.PublicKey:
		if s.sigAlg != signatureRSA || rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], s.signature) != nil {
			return -1, ErrInvalidSCTSignature
		}
	default:
		return -1, ErrInvalidSCTSignature
	}
	if s.timestamp > uint64(now.UnixMilli()) {
		return -1, ErrSCTTimestampInFuture
	}
	return idx, nil
}

// CheckSCTs verifies every SCT presented with a certificate. SCTs from
// unknown logs are skipped; any other failure is reported as InvalidSct.
// It returns the number of SCTs that verified.
func CheckSCTs(certDER []byte, scts [][]byte, now time.Time, logs []*Log) (int, *errors.Error) {
	valid := 0
	for _, data := range scts {
		_, err := VerifySCT(certDER, data, now, logs)
		switch {
		case err == nil:
			valid++
		case stderrors.Is(err, ErrUnknownLog):
			continue
		default:
			return valid, Translate(err)
		}
	}
	return valid, nil
}
