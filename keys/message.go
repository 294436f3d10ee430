package keys

import (
	json "github.com/goccy/go-json"

	"github.com/kbukum/faultline/errors"
)

// SignedMessage is a payload together with its signer and signature.
type SignedMessage struct {
	Signer    PublicKey `json:"signer"`
	Signature Signature `json:"signature"`
	Payload   []byte    `json:"payload"`
}

// SignMessage encodes payload as JSON and signs the encoding with kp.
// A payload that cannot be encoded is UnableToSerializeTx.
func SignMessage(kp Keypair, payload any) (SignedMessage, *errors.Error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return SignedMessage{}, errors.New(errors.KindUnableToSerializeTx)
	}
	return SignedMessage{
		Signer:    kp.PublicKey(),
		Signature: kp.Sign(data),
		Payload:   data,
	}, nil
}

// Verify checks the signature against the signer and payload.
func (m SignedMessage) Verify() *errors.Error {
	return Verify(m.Signer, m.Payload, m.Signature)
}

// Decode verifies m and then decodes its payload into v.
func (m SignedMessage) Decode(v any) *errors.Error {
	if err := m.Verify(); err != nil {
		return err
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return errors.Serialization(err.Error())
	}
	return nil
}
