// Package tlserr translates crypto/tls and crypto/x509 failures into the
// secure-channel category of the unified error type.
//
// Go's TLS stack reports most protocol failures as alerts wrapped in a
// net.OpError ("local error" for alerts we sent, "remote error" for alerts
// the peer sent) or as plain "tls: ..." errors. Both are classified here;
// anything unrecognised becomes General carrying the original message.
package tlserr

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/asn1"
	stderrors "errors"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
)

const (
	opLocalAlert  = "local error"
	opRemoteAlert = "remote error"
)

var unexpectedHandshake = regexp.MustCompile(
	`tls: received unexpected handshake message of type \*tls\.(\w+) when waiting for \*tls\.(\w+)`)

// Handshake message type names used by crypto/tls.
var handshakeMessages = map[string]errors.HandshakeTypeCode{
	"helloRequestMsg":            errors.HandshakeHelloRequest,
	"clientHelloMsg":             errors.HandshakeClientHello,
	"serverHelloMsg":             errors.HandshakeServerHello,
	"newSessionTicketMsg":        errors.HandshakeNewSessionTicket,
	"newSessionTicketMsgTLS13":   errors.HandshakeNewSessionTicket,
	"endOfEarlyDataMsg":          errors.HandshakeEndOfEarlyData,
	"encryptedExtensionsMsg":     errors.HandshakeEncryptedExtensions,
	"certificateMsg":             errors.HandshakeCertificate,
	"certificateMsgTLS13":        errors.HandshakeCertificate,
	"serverKeyExchangeMsg":       errors.HandshakeServerKeyExchange,
	"certificateRequestMsg":      errors.HandshakeCertificateRequest,
	"certificateRequestMsgTLS13": errors.HandshakeCertificateRequest,
	"serverHelloDoneMsg":         errors.HandshakeServerHelloDone,
	"certificateVerifyMsg":       errors.HandshakeCertificateVerify,
	"clientKeyExchangeMsg":       errors.HandshakeClientKeyExchange,
	"finishedMsg":                errors.HandshakeFinished,
	"certificateStatusMsg":       errors.HandshakeCertificateStatus,
	"keyUpdateMsg":               errors.HandshakeKeyUpdate,
}

// Message fragments of plain crypto/tls errors, checked in order.
var messageRules = []struct {
	fragment string
	code     errors.TLSCode
}{
	{"short read from Rand", errors.TLSFailedToGetRandomBytes},
	{"oversized record", errors.TLSPeerSentOversizedRecord},
	{"ALPN", errors.TLSNoApplicationProtocol},
	{"application protocol", errors.TLSNoApplicationProtocol},
	{"received empty certificates message", errors.TLSNoCertificatesPresented},
	{"didn't provide a certificate", errors.TLSNoCertificatesPresented},
	{"failed to parse certificate", errors.TLSInvalidCertificateEncoding},
	{"invalid signature by the", errors.TLSInvalidCertificateSignature},
	{"unsupported signature algorithm", errors.TLSInvalidCertificateSignatureType},
	{"handshake has not yet been performed", errors.TLSHandshakeNotComplete},
	{"unsupported protocol version", errors.TLSPeerIncompatible},
	{"unsupported versions", errors.TLSPeerIncompatible},
	{"no cipher suite supported", errors.TLSPeerIncompatible},
	{"unconfigured cipher suite", errors.TLSPeerIncompatible},
	{"no supported versions", errors.TLSPeerIncompatible},
	{"unsupported SSLv2 handshake", errors.TLSPeerIncompatible},
}

// Translate converts a TLS failure into a KindTLS error. I/O failures that
// surface during a handshake keep their I/O classification.
func Translate(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		return e
	}
	if t, ok := Classify(err); ok {
		return errors.FromTLS(t)
	}
	if _, ok := ioerr.Code(err); ok {
		return ioerr.Translate(err)
	}
	return errors.FromTLS(errors.TLSMessageError(errors.TLSGeneral, err.Error()))
}

// Classify returns the secure-channel category for err when it originates
// in crypto/tls, crypto/x509 or the SCT checker.
func Classify(err error) (errors.TLSError, bool) {
	if sct, ok := SCTKind(err); ok {
		return errors.TLSSCTError(sct), true
	}

	// Only the first header byte names a content type; Msg and the version
	// and length bytes are not carried.
	var recordErr tls.RecordHeaderError
	if stderrors.As(err, &recordErr) {
		return InappropriateMessage([]uint8{22}, recordErr.RecordHeader[0]), true
	}

	var alertErr tls.AlertError
	if stderrors.As(err, &alertErr) {
		return errors.TLSAlertError(AlertFromWire(uint8(alertErr))), true
	}

	var opErr *net.OpError
	if stderrors.As(err, &opErr) {
		if b, ok := alertByte(opErr.Err); ok {
			switch opErr.Op {
			case opRemoteAlert:
				return errors.TLSAlertError(AlertFromWire(b)), true
			case opLocalAlert:
				return localAlert(AlertFromWire(b), opErr.Err.Error()), true
			}
		}
	}

	if t, ok := classifyX509(err); ok {
		return t, true
	}

	msg := err.Error()
	if m := unexpectedHandshake.FindStringSubmatch(msg); m != nil {
		got, okGot := handshakeMessages[m[1]]
		want, okWant := handshakeMessages[m[2]]
		if okGot && okWant {
			return errors.TLSInappropriateHandshakeError(
				[]errors.HandshakeType{{Code: want}},
				errors.HandshakeType{Code: got},
			), true
		}
	}
	if !strings.Contains(msg, "tls: ") {
		return errors.TLSError{}, false
	}
	for _, r := range messageRules {
		if strings.Contains(msg, r.fragment) {
			if r.code == errors.TLSPeerIncompatible {
				return errors.TLSMessageError(r.code, msg), true
			}
			return errors.TLS(r.code), true
		}
	}
	return errors.TLSError{}, false
}

// alertByte extracts the alert number from crypto/tls's unexported alert
// type, which is a uint8.
func alertByte(err error) (uint8, bool) {
	if err == nil {
		return 0, false
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Uint8 || v.Type().PkgPath() != "crypto/tls" {
		return 0, false
	}
	return uint8(v.Uint()), true
}

// localAlert maps an alert we sent to the failure that caused it.
func localAlert(a errors.AlertDescription, text string) errors.TLSError {
	switch a.Code {
	case errors.AlertBadRecordMac, errors.AlertDecryptionFailed, errors.AlertDecryptError:
		return errors.TLS(errors.TLSDecryptError)
	case errors.AlertRecordOverflow:
		return errors.TLS(errors.TLSPeerSentOversizedRecord)
	case errors.AlertDecodeError:
		return errors.TLS(errors.TLSCorruptMessage)
	case errors.AlertNoApplicationProtocol:
		return errors.TLS(errors.TLSNoApplicationProtocol)
	case errors.AlertUnrecognisedName:
		return errors.TLS(errors.TLSUnsupportedNameType)
	case errors.AlertCertificateRequired:
		return errors.TLS(errors.TLSNoCertificatesPresented)
	case errors.AlertProtocolVersion, errors.AlertHandshakeFailure, errors.AlertInsufficientSecurity:
		return errors.TLSMessageError(errors.TLSPeerIncompatible, text)
	case errors.AlertInternalError:
		return errors.TLSMessageError(errors.TLSGeneral, text)
	}
	return errors.TLSMessageError(errors.TLSPeerMisbehaved, text)
}

func classifyX509(err error) (errors.TLSError, bool) {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		invalid          x509.CertificateInvalidError
		constraint       x509.ConstraintViolationError
		insecure         x509.InsecureAlgorithmError
		systemRoots      x509.SystemRootsError
		structural       asn1.StructuralError
		syntax           asn1.SyntaxError
	)
	switch {
	case stderrors.As(err, &insecure), stderrors.Is(err, x509.ErrUnsupportedAlgorithm):
		return errors.TLS(errors.TLSInvalidCertificateSignatureType), true
	case stderrors.As(err, &unknownAuthority),
		stderrors.As(err, &hostname),
		stderrors.As(err, &invalid),
		stderrors.As(err, &constraint),
		stderrors.As(err, &systemRoots):
		return errors.TLSMessageError(errors.TLSInvalidCertificateData, x509Message(err)), true
	case stderrors.As(err, &structural), stderrors.As(err, &syntax):
		return errors.TLS(errors.TLSInvalidCertificateEncoding), true
	}
	if strings.HasPrefix(err.Error(), "x509: malformed") {
		return errors.TLS(errors.TLSInvalidCertificateEncoding), true
	}
	return errors.TLSError{}, false
}

// x509Message returns the innermost x509 text, dropping the "tls: failed to
// verify certificate: " prefix crypto/tls adds.
func x509Message(err error) string {
	var verr *tls.CertificateVerificationError
	if stderrors.As(err, &verr) && verr.Err != nil {
		return verr.Err.Error()
	}
	return err.Error()
}

// Handshake runs the TLS handshake on conn and translates its failure.
func Handshake(ctx context.Context, conn *tls.Conn) *errors.Error {
	return Translate(conn.HandshakeContext(ctx))
}

// State returns the connection state, or HandshakeNotComplete if conn has
// not finished its handshake.
func State(conn *tls.Conn) (tls.ConnectionState, *errors.Error) {
	cs := conn.ConnectionState()
	if !cs.HandshakeComplete {
		return cs, errors.FromTLS(errors.TLS(errors.TLSHandshakeNotComplete))
	}
	return cs, nil
}
