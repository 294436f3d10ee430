package errors

// fixtures returns one or more values of every variant, every nested category
// and every Unknown wire byte case.
func fixtures() []*Error {
	out := []*Error{
		New(KindMissingEd25519PublicKey),
		New(KindMissingKeypair),
		New(KindMissingTxSignature),
		New(KindHomeDirectoryNotFound),
		New(KindPathIsNotValidUTF8),
		InvalidUTF8("invalid utf-8 sequence of 1 bytes from index 2"),
		InvalidUTF8(""),
		New(KindInvalidBase58Ed25519SecretKey),
		New(KindInvalidBase58Ed25519PublicKey),
		New(KindInvalidBase58Ed25519Signature),
		New(KindRepoCreatePermissionDenied),
		New(KindRepoAlreadyExists),
		New(KindInvalidByteToUTF8StringConversion),
		New(KindInvalidEd25519PublicKeyHex),
		InvalidHexCharacter("g", 3),
		InvalidHexCharacter("é", 0),
		InvalidHexCharacter("z", 1<<40),
		New(KindOddLength),
		New(KindInvalidStringLength),
		New(KindAccountNotFound),
		New(KindUnableToDeserializeAccountInfo),
		New(KindUnableToSerializeTx),
		Transaction("blockhash not found"),
		JSONRPC(-32602, "invalid params"),
		JSONRPC(0, ""),
		JSONRPC(32767, "max"),
		Serialization("expected value at line 1 column 1"),
		Unspecified("<*net.OpError> - `dial tcp: refused`"),
		Unspecified(""),
		Unspecified("bad \xff byte"),
		Transaction("\xc3"),
		InvalidHexCharacter("\xfe", 2),
		FromIO(IOUnspecifiedKind("<*fs.PathError> - `open /tmp/f/\xff: not a directory`")),
		FromStore(Store(StoreCorruption, "\x80at")),
		FromHTTP(HTTPOtherError("x\xfey")),
		FromTLS(TLSMessageError(TLSGeneral, "alert \xff")),
	}
	for c := IOCode(0); c < ioCodeCount; c++ {
		if c == IOUnspecified {
			out = append(out, FromIO(IOUnspecifiedKind("<*fs.PathError> - `boom`")))
			continue
		}
		out = append(out, FromIO(IO(c)))
	}
	for c := StoreCode(0); c < storeCodeCount; c++ {
		out = append(out, FromStore(Store(c, c.String()+" at segment 7")))
	}
	for c := HTTPCode(0); c < httpCodeCount; c++ {
		if c == HTTPOther {
			out = append(out, FromHTTP(HTTPOtherError("connection closed before message completed")))
			continue
		}
		out = append(out, FromHTTP(HTTP(c)))
	}
	for _, t := range tlsFixtures() {
		out = append(out, FromTLS(t))
	}
	return out
}

func tlsFixtures() []TLSError {
	out := []TLSError{
		TLSInappropriateMessageError(
			[]ContentType{{Code: ContentHandshake}, {Code: ContentApplicationData}},
			ContentType{Code: ContentAlert},
		),
		TLSInappropriateMessageError(nil, ContentType{Code: ContentUnknown, Raw: 99}),
		TLSInappropriateHandshakeError(
			[]HandshakeType{{Code: HandshakeServerHello}},
			HandshakeType{Code: HandshakeCertificate},
		),
		TLSInappropriateHandshakeError(
			[]HandshakeType{{Code: HandshakeClientHello}, {Code: HandshakeUnknown, Raw: 250}},
			HandshakeType{Code: HandshakeUnknown, Raw: 7},
		),
		TLS(TLSCorruptMessage),
		TLSCorruptPayloadError(ContentType{Code: ContentHeartbeat}),
		TLSCorruptPayloadError(ContentType{Code: ContentUnknown, Raw: 255}),
		TLS(TLSNoCertificatesPresented),
		TLS(TLSUnsupportedNameType),
		TLS(TLSDecryptError),
		TLS(TLSEncryptError),
		TLSMessageError(TLSPeerIncompatible, "no supported versions"),
		TLSMessageError(TLSPeerMisbehaved, "bad key share"),
		TLSAlertError(AlertDescription{Code: AlertUnknown, Raw: 200}),
		TLS(TLSInvalidCertificateEncoding),
		TLS(TLSInvalidCertificateSignatureType),
		TLS(TLSInvalidCertificateSignature),
		TLSMessageError(TLSInvalidCertificateData, "certificate signed by unknown authority"),
		TLSMessageError(TLSGeneral, "cipher suite mismatch"),
		TLS(TLSFailedToGetCurrentTime),
		TLS(TLSFailedToGetRandomBytes),
		TLS(TLSHandshakeNotComplete),
		TLS(TLSPeerSentOversizedRecord),
		TLS(TLSNoApplicationProtocol),
		TLS(TLSBadMaxFragmentSize),
	}
	for c := AlertCode(0); c < AlertUnknown; c++ {
		out = append(out, TLSAlertError(AlertDescription{Code: c}))
	}
	for s := SCTError(0); s < sctErrorCount; s++ {
		out = append(out, TLSSCTError(s))
	}
	return out
}
