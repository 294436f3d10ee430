// Package keys handles Ed25519 key material: 32-byte public keys, 64-byte
// keypairs (seed followed by public key) and 64-byte signatures.
//
// Values parse from hex through hexerr, so malformed text reports
// InvalidHexCharacter, OddLength or InvalidStringLength, and from base58,
// which reports the InvalidBase58Ed25519* kind of the target type. A hex
// public key that decodes but is not a curve point is
// InvalidEd25519PublicKeyHex.
//
// Keypair files hold either a JSON array of 64 byte values or a base58
// string:
//
//	kp, err := keys.LoadKeypair("")  // ~/.config/faultline/id.json
//	msg, err := keys.SignMessage(kp, payload)
//	err = msg.Verify()
package keys
