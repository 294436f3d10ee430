package tlserr

import "github.com/kbukum/faultline/errors"

var contentTypes = map[uint8]errors.ContentTypeCode{
	20: errors.ContentChangeCipherSpec,
	21: errors.ContentAlert,
	22: errors.ContentHandshake,
	23: errors.ContentApplicationData,
	24: errors.ContentHeartbeat,
}

var handshakeTypes = map[uint8]errors.HandshakeTypeCode{
	0:   errors.HandshakeHelloRequest,
	1:   errors.HandshakeClientHello,
	2:   errors.HandshakeServerHello,
	4:   errors.HandshakeNewSessionTicket,
	5:   errors.HandshakeEndOfEarlyData,
	6:   errors.HandshakeHelloRetryRequest,
	8:   errors.HandshakeEncryptedExtensions,
	11:  errors.HandshakeCertificate,
	12:  errors.HandshakeServerKeyExchange,
	13:  errors.HandshakeCertificateRequest,
	14:  errors.HandshakeServerHelloDone,
	15:  errors.HandshakeCertificateVerify,
	16:  errors.HandshakeClientKeyExchange,
	20:  errors.HandshakeFinished,
	21:  errors.HandshakeCertificateURL,
	22:  errors.HandshakeCertificateStatus,
	24:  errors.HandshakeKeyUpdate,
	254: errors.HandshakeMessageHash,
}

var alerts = map[uint8]errors.AlertCode{
	0:   errors.AlertCloseNotify,
	10:  errors.AlertUnexpectedMessage,
	20:  errors.AlertBadRecordMac,
	21:  errors.AlertDecryptionFailed,
	22:  errors.AlertRecordOverflow,
	30:  errors.AlertDecompressionFailure,
	40:  errors.AlertHandshakeFailure,
	41:  errors.AlertNoCertificate,
	42:  errors.AlertBadCertificate,
	43:  errors.AlertUnsupportedCertificate,
	44:  errors.AlertCertificateRevoked,
	45:  errors.AlertCertificateExpired,
	46:  errors.AlertCertificateUnknown,
	47:  errors.AlertIllegalParameter,
	48:  errors.AlertUnknownCA,
	49:  errors.AlertAccessDenied,
	50:  errors.AlertDecodeError,
	51:  errors.AlertDecryptError,
	60:  errors.AlertExportRestriction,
	70:  errors.AlertProtocolVersion,
	71:  errors.AlertInsufficientSecurity,
	80:  errors.AlertInternalError,
	86:  errors.AlertInappropriateFallback,
	90:  errors.AlertUserCanceled,
	100: errors.AlertNoRenegotiation,
	109: errors.AlertMissingExtension,
	110: errors.AlertUnsupportedExtension,
	111: errors.AlertCertificateUnobtainable,
	112: errors.AlertUnrecognisedName,
	113: errors.AlertBadCertificateStatusResponse,
	114: errors.AlertBadCertificateHashValue,
	115: errors.AlertUnknownPSKIdentity,
	116: errors.AlertCertificateRequired,
	120: errors.AlertNoApplicationProtocol,
}

// ContentTypeFromWire classifies a record content type byte.
func ContentTypeFromWire(b uint8) errors.ContentType {
	if code, ok := contentTypes[b]; ok {
		return errors.ContentType{Code: code}
	}
	return errors.ContentType{Code: errors.ContentUnknown, Raw: b}
}

// HandshakeTypeFromWire classifies a handshake message type byte.
func HandshakeTypeFromWire(b uint8) errors.HandshakeType {
	if code, ok := handshakeTypes[b]; ok {
		return errors.HandshakeType{Code: code}
	}
	return errors.HandshakeType{Code: errors.HandshakeUnknown, Raw: b}
}

// AlertFromWire classifies an alert description byte.
func AlertFromWire(b uint8) errors.AlertDescription {
	if code, ok := alerts[b]; ok {
		return errors.AlertDescription{Code: code}
	}
	return errors.AlertDescription{Code: errors.AlertUnknown, Raw: b}
}

// InappropriateMessage builds an InappropriateMessage error from wire bytes,
// keeping the order and length of expected.
func InappropriateMessage(expected []uint8, got uint8) errors.TLSError {
	types := make([]errors.ContentType, len(expected))
	for i, b := range expected {
		types[i] = ContentTypeFromWire(b)
	}
	return errors.TLSInappropriateMessageError(types, ContentTypeFromWire(got))
}

// InappropriateHandshake builds an InappropriateHandshakeMessage error from
// wire bytes, keeping the order and length of expected.
func InappropriateHandshake(expected []uint8, got uint8) errors.TLSError {
	types := make([]errors.HandshakeType, len(expected))
	for i, b := range expected {
		types[i] = HandshakeTypeFromWire(b)
	}
	return errors.TLSInappropriateHandshakeError(types, HandshakeTypeFromWire(got))
}
