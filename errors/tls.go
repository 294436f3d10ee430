package errors

import (
	"fmt"
	"strings"
)

// ContentTypeCode enumerates TLS record content types.
type ContentTypeCode uint32

const (
	ContentChangeCipherSpec ContentTypeCode = iota
	ContentAlert
	ContentHandshake
	ContentApplicationData
	ContentHeartbeat
	ContentUnknown

	contentTypeCount
)

var contentTypeNames = [...]string{
	ContentChangeCipherSpec: "ChangeCipherSpec",
	ContentAlert:            "Alert",
	ContentHandshake:        "Handshake",
	ContentApplicationData:  "ApplicationData",
	ContentHeartbeat:        "Heartbeat",
	ContentUnknown:          "Unknown",
}

func (c ContentTypeCode) String() string {
	return enumName(contentTypeNames[:], uint32(c), "ContentTypeCode")
}

// ContentType is a classified TLS record content type. Raw is only set for
// ContentUnknown and holds the wire byte.
type ContentType struct {
	Code ContentTypeCode
	Raw  uint8
}

func (t ContentType) String() string {
	if t.Code == ContentUnknown {
		return fmt.Sprintf("Unknown(%d)", t.Raw)
	}
	return t.Code.String()
}

// Compare orders content types by declaration order, then raw value.
func (t ContentType) Compare(o ContentType) int {
	return cmpCoded(uint32(t.Code), uint32(o.Code), t.Code == ContentUnknown, t.Raw, o.Raw)
}

// HandshakeTypeCode enumerates TLS handshake message types.
type HandshakeTypeCode uint32

const (
	HandshakeHelloRequest HandshakeTypeCode = iota
	HandshakeClientHello
	HandshakeServerHello
	HandshakeNewSessionTicket
	HandshakeEndOfEarlyData
	HandshakeHelloRetryRequest
	HandshakeEncryptedExtensions
	HandshakeCertificate
	HandshakeServerKeyExchange
	HandshakeCertificateRequest
	HandshakeServerHelloDone
	HandshakeCertificateVerify
	HandshakeClientKeyExchange
	HandshakeFinished
	HandshakeCertificateURL
	HandshakeCertificateStatus
	HandshakeKeyUpdate
	HandshakeMessageHash
	HandshakeUnknown

	handshakeTypeCount
)

var handshakeTypeNames = [...]string{
	HandshakeHelloRequest:        "HelloRequest",
	HandshakeClientHello:         "ClientHello",
	HandshakeServerHello:         "ServerHello",
	HandshakeNewSessionTicket:    "NewSessionTicket",
	HandshakeEndOfEarlyData:      "EndOfEarlyData",
	HandshakeHelloRetryRequest:   "HelloRetryRequest",
	HandshakeEncryptedExtensions: "EncryptedExtensions",
	HandshakeCertificate:         "Certificate",
	HandshakeServerKeyExchange:   "ServerKeyExchange",
	HandshakeCertificateRequest:  "CertificateRequest",
	HandshakeServerHelloDone:     "ServerHelloDone",
	HandshakeCertificateVerify:   "CertificateVerify",
	HandshakeClientKeyExchange:   "ClientKeyExchange",
	HandshakeFinished:            "Finished",
	HandshakeCertificateURL:      "CertificateURL",
	HandshakeCertificateStatus:   "CertificateStatus",
	HandshakeKeyUpdate:           "KeyUpdate",
	HandshakeMessageHash:         "MessageHash",
	HandshakeUnknown:             "Unknown",
}

func (c HandshakeTypeCode) String() string {
	return enumName(handshakeTypeNames[:], uint32(c), "HandshakeTypeCode")
}

// HandshakeType is a classified handshake message type. Raw is only set for
// HandshakeUnknown.
type HandshakeType struct {
	Code HandshakeTypeCode
	Raw  uint8
}

func (t HandshakeType) String() string {
	if t.Code == HandshakeUnknown {
		return fmt.Sprintf("Unknown(%d)", t.Raw)
	}
	return t.Code.String()
}

// Compare orders handshake types by declaration order, then raw value.
func (t HandshakeType) Compare(o HandshakeType) int {
	return cmpCoded(uint32(t.Code), uint32(o.Code), t.Code == HandshakeUnknown, t.Raw, o.Raw)
}

// AlertCode enumerates TLS alert descriptions.
type AlertCode uint32

const (
	AlertCloseNotify AlertCode = iota
	AlertUnexpectedMessage
	AlertBadRecordMac
	AlertDecryptionFailed
	AlertRecordOverflow
	AlertDecompressionFailure
	AlertHandshakeFailure
	AlertNoCertificate
	AlertBadCertificate
	AlertUnsupportedCertificate
	AlertCertificateRevoked
	AlertCertificateExpired
	AlertCertificateUnknown
	AlertIllegalParameter
	AlertUnknownCA
	AlertAccessDenied
	AlertDecodeError
	AlertDecryptError
	AlertExportRestriction
	AlertProtocolVersion
	AlertInsufficientSecurity
	AlertInternalError
	AlertInappropriateFallback
	AlertUserCanceled
	AlertNoRenegotiation
	AlertMissingExtension
	AlertUnsupportedExtension
	AlertCertificateUnobtainable
	AlertUnrecognisedName
	AlertBadCertificateStatusResponse
	AlertBadCertificateHashValue
	AlertUnknownPSKIdentity
	AlertCertificateRequired
	AlertNoApplicationProtocol
	AlertUnknown

	alertCodeCount
)

var alertCodeNames = [...]string{
	AlertCloseNotify:                  "CloseNotify",
	AlertUnexpectedMessage:            "UnexpectedMessage",
	AlertBadRecordMac:                 "BadRecordMac",
	AlertDecryptionFailed:             "DecryptionFailed",
	AlertRecordOverflow:               "RecordOverflow",
	AlertDecompressionFailure:         "DecompressionFailure",
	AlertHandshakeFailure:             "HandshakeFailure",
	AlertNoCertificate:                "NoCertificate",
	AlertBadCertificate:               "BadCertificate",
	AlertUnsupportedCertificate:       "UnsupportedCertificate",
	AlertCertificateRevoked:           "CertificateRevoked",
	AlertCertificateExpired:           "CertificateExpired",
	AlertCertificateUnknown:           "CertificateUnknown",
	AlertIllegalParameter:             "IllegalParameter",
	AlertUnknownCA:                    "UnknownCA",
	AlertAccessDenied:                 "AccessDenied",
	AlertDecodeError:                  "DecodeError",
	AlertDecryptError:                 "DecryptError",
	AlertExportRestriction:            "ExportRestriction",
	AlertProtocolVersion:              "ProtocolVersion",
	AlertInsufficientSecurity:         "InsufficientSecurity",
	AlertInternalError:                "InternalError",
	AlertInappropriateFallback:        "InappropriateFallback",
	AlertUserCanceled:                 "UserCanceled",
	AlertNoRenegotiation:              "NoRenegotiation",
	AlertMissingExtension:             "MissingExtension",
	AlertUnsupportedExtension:         "UnsupportedExtension",
	AlertCertificateUnobtainable:      "CertificateUnobtainable",
	AlertUnrecognisedName:             "UnrecognisedName",
	AlertBadCertificateStatusResponse: "BadCertificateStatusResponse",
	AlertBadCertificateHashValue:      "BadCertificateHashValue",
	AlertUnknownPSKIdentity:           "UnknownPSKIdentity",
	AlertCertificateRequired:          "CertificateRequired",
	AlertNoApplicationProtocol:        "NoApplicationProtocol",
	AlertUnknown:                      "Unknown",
}

func (c AlertCode) String() string { return enumName(alertCodeNames[:], uint32(c), "AlertCode") }

// AlertDescription is a classified TLS alert. Raw is only set for AlertUnknown.
type AlertDescription struct {
	Code AlertCode
	Raw  uint8
}

func (a AlertDescription) String() string {
	if a.Code == AlertUnknown {
		return fmt.Sprintf("Unknown(%d)", a.Raw)
	}
	return a.Code.String()
}

// Compare orders alerts by declaration order, then raw value.
func (a AlertDescription) Compare(o AlertDescription) int {
	return cmpCoded(uint32(a.Code), uint32(o.Code), a.Code == AlertUnknown, a.Raw, o.Raw)
}

// SCTError classifies signed certificate timestamp verification failures.
type SCTError uint32

const (
	SCTMalformed SCTError = iota
	SCTInvalidSignature
	SCTTimestampInFuture
	SCTUnsupportedVersion
	SCTUnknownLog

	sctErrorCount
)

var sctErrorNames = [...]string{
	SCTMalformed:          "MalformedSct",
	SCTInvalidSignature:   "InvalidSignature",
	SCTTimestampInFuture:  "TimestampInFuture",
	SCTUnsupportedVersion: "UnsupportedSctVersion",
	SCTUnknownLog:         "UnknownLog",
}

func (e SCTError) String() string { return enumName(sctErrorNames[:], uint32(e), "SCTError") }

// Valid reports whether e is a declared SCT failure.
func (e SCTError) Valid() bool { return e < sctErrorCount }

// TLSCode enumerates secure-channel failures.
type TLSCode uint32

const (
	TLSInappropriateMessage TLSCode = iota
	TLSInappropriateHandshakeMessage
	TLSCorruptMessage
	TLSCorruptMessagePayload
	TLSNoCertificatesPresented
	TLSUnsupportedNameType
	TLSDecryptError
	TLSEncryptError
	TLSPeerIncompatible
	TLSPeerMisbehaved
	TLSAlertReceived
	TLSInvalidCertificateEncoding
	TLSInvalidCertificateSignatureType
	TLSInvalidCertificateSignature
	TLSInvalidCertificateData
	TLSInvalidSCT
	TLSGeneral
	TLSFailedToGetCurrentTime
	TLSFailedToGetRandomBytes
	TLSHandshakeNotComplete
	TLSPeerSentOversizedRecord
	TLSNoApplicationProtocol
	TLSBadMaxFragmentSize

	tlsCodeCount
)

var tlsCodeNames = [...]string{
	TLSInappropriateMessage:            "InappropriateMessage",
	TLSInappropriateHandshakeMessage:   "InappropriateHandshakeMessage",
	TLSCorruptMessage:                  "CorruptMessage",
	TLSCorruptMessagePayload:           "CorruptMessagePayload",
	TLSNoCertificatesPresented:         "NoCertificatesPresented",
	TLSUnsupportedNameType:             "UnsupportedNameType",
	TLSDecryptError:                    "DecryptError",
	TLSEncryptError:                    "EncryptError",
	TLSPeerIncompatible:                "PeerIncompatibleError",
	TLSPeerMisbehaved:                  "PeerMisbehavedError",
	TLSAlertReceived:                   "AlertReceived",
	TLSInvalidCertificateEncoding:      "InvalidCertificateEncoding",
	TLSInvalidCertificateSignatureType: "InvalidCertificateSignatureType",
	TLSInvalidCertificateSignature:     "InvalidCertificateSignature",
	TLSInvalidCertificateData:          "InvalidCertificateData",
	TLSInvalidSCT:                      "InvalidSct",
	TLSGeneral:                         "General",
	TLSFailedToGetCurrentTime:          "FailedToGetCurrentTime",
	TLSFailedToGetRandomBytes:          "FailedToGetRandomBytes",
	TLSHandshakeNotComplete:            "HandshakeNotComplete",
	TLSPeerSentOversizedRecord:         "PeerSentOversizedRecord",
	TLSNoApplicationProtocol:           "NoApplicationProtocol",
	TLSBadMaxFragmentSize:              "BadMaxFragmentSize",
}

func (c TLSCode) String() string { return enumName(tlsCodeNames[:], uint32(c), "TLSCode") }

// Valid reports whether c is a declared code.
func (c TLSCode) Valid() bool { return c < tlsCodeCount }

// TLSError is the secure-channel leaf category.
//
// Which payload fields are meaningful depends on Code:
//
//	TLSInappropriateMessage           ExpectedContent, Content
//	TLSInappropriateHandshakeMessage  ExpectedHandshake, Handshake
//	TLSCorruptMessagePayload          Content
//	TLSAlertReceived                  Alert
//	TLSInvalidSCT                     SCT
//	TLSPeerIncompatible, TLSPeerMisbehaved,
//	TLSInvalidCertificateData, TLSGeneral   Message
//
// Use the constructors below; they never set fields the code does not carry.
type TLSError struct {
	Code              TLSCode
	ExpectedContent   []ContentType
	Content           ContentType
	ExpectedHandshake []HandshakeType
	Handshake         HandshakeType
	Alert             AlertDescription
	SCT               SCTError
	Message           string
}

// TLS returns a payload-free secure-channel error.
func TLS(code TLSCode) TLSError { return TLSError{Code: code} }

// TLSInappropriateMessageError builds an InappropriateMessage error. The
// expected list is copied.
func TLSInappropriateMessageError(expected []ContentType, got ContentType) TLSError {
	return TLSError{
		Code:            TLSInappropriateMessage,
		ExpectedContent: append([]ContentType{}, expected...),
		Content:         got,
	}
}

// TLSInappropriateHandshakeError builds an InappropriateHandshakeMessage
// error. The expected list is copied.
func TLSInappropriateHandshakeError(expected []HandshakeType, got HandshakeType) TLSError {
	return TLSError{
		Code:              TLSInappropriateHandshakeMessage,
		ExpectedHandshake: append([]HandshakeType{}, expected...),
		Handshake:         got,
	}
}

// TLSCorruptPayloadError builds a CorruptMessagePayload error.
func TLSCorruptPayloadError(ct ContentType) TLSError {
	return TLSError{Code: TLSCorruptMessagePayload, Content: ct}
}

// TLSAlertError builds an AlertReceived error.
func TLSAlertError(a AlertDescription) TLSError {
	return TLSError{Code: TLSAlertReceived, Alert: a}
}

// TLSSCTError builds an InvalidSct error.
func TLSSCTError(e SCTError) TLSError {
	return TLSError{Code: TLSInvalidSCT, SCT: e}
}

// TLSMessageError builds one of the string-carrying errors.
func TLSMessageError(code TLSCode, msg string) TLSError {
	return TLSError{Code: code, Message: msg}
}

// carriesMessage reports whether code has a string payload.
func (c TLSCode) carriesMessage() bool {
	switch c {
	case TLSPeerIncompatible, TLSPeerMisbehaved, TLSInvalidCertificateData, TLSGeneral:
		return true
	}
	return false
}

func (e TLSError) String() string {
	switch e.Code {
	case TLSInappropriateMessage:
		return fmt.Sprintf("%s(expected [%s], got %s)", e.Code, joinStrings(e.ExpectedContent), e.Content)
	case TLSInappropriateHandshakeMessage:
		return fmt.Sprintf("%s(expected [%s], got %s)", e.Code, joinStrings(e.ExpectedHandshake), e.Handshake)
	case TLSCorruptMessagePayload:
		return fmt.Sprintf("%s(%s)", e.Code, e.Content)
	case TLSAlertReceived:
		return fmt.Sprintf("%s(%s)", e.Code, e.Alert)
	case TLSInvalidSCT:
		return fmt.Sprintf("%s(%s)", e.Code, e.SCT)
	}
	if e.Code.carriesMessage() {
		return fmt.Sprintf("%s(%s)", e.Code, e.Message)
	}
	return e.Code.String()
}

// Equal reports structural equality.
func (e TLSError) Equal(o TLSError) bool { return e.Compare(o) == 0 }

// Compare orders secure-channel errors by code, then by the fields the code
// carries in declaration order.
func (e TLSError) Compare(o TLSError) int {
	if c := cmpUint(uint32(e.Code), uint32(o.Code)); c != 0 {
		return c
	}
	switch e.Code {
	case TLSInappropriateMessage:
		if c := compareSlices(e.ExpectedContent, o.ExpectedContent, ContentType.Compare); c != 0 {
			return c
		}
		return e.Content.Compare(o.Content)
	case TLSInappropriateHandshakeMessage:
		if c := compareSlices(e.ExpectedHandshake, o.ExpectedHandshake, HandshakeType.Compare); c != 0 {
			return c
		}
		return e.Handshake.Compare(o.Handshake)
	case TLSCorruptMessagePayload:
		return e.Content.Compare(o.Content)
	case TLSAlertReceived:
		return e.Alert.Compare(o.Alert)
	case TLSInvalidSCT:
		return cmpUint(uint32(e.SCT), uint32(o.SCT))
	}
	if e.Code.carriesMessage() {
		return cmpString(e.Message, o.Message)
	}
	return 0
}

func joinStrings[T fmt.Stringer](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, ", ")
}
