// Package hexerr decodes hexadecimal text and reports failures as unified
// errors: InvalidHexCharacter with the offending character and its byte
// index, OddLength, and InvalidStringLength when the decoded size does not
// match a fixed-size target.
package hexerr

import (
	"encoding/hex"
	stderrors "errors"
	"strings"

	"github.com/kbukum/faultline/errors"
)

// Decode decodes s. Length parity is checked before any character.
func Decode(s string) ([]byte, *errors.Error) {
	if len(s)%2 != 0 {
		return nil, errors.New(errors.KindOddLength)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, Translate(s, err)
	}
	return b, nil
}

// DecodeInto decodes s into dst, which must be exactly len(s)/2 bytes long.
// Checks run in order: parity, target length, characters.
func DecodeInto(dst []byte, s string) *errors.Error {
	if len(s)%2 != 0 {
		return errors.New(errors.KindOddLength)
	}
	if len(s)/2 != len(dst) {
		return errors.New(errors.KindInvalidStringLength)
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return Translate(s, err)
	}
	return nil
}

// Translate maps an encoding/hex error produced while decoding src.
// Unrecognised errors become Unspecified.
func Translate(src string, err error) *errors.Error {
	if err == nil {
		return nil
	}
	var invalid hex.InvalidByteError
	switch {
	case stderrors.As(err, &invalid):
		b := byte(invalid)
		idx := strings.IndexByte(src, b)
		if idx < 0 {
			idx = firstInvalid(src)
		}
		return errors.InvalidHexCharacter(string(rune(b)), uint64(max(idx, 0)))
	case stderrors.Is(err, hex.ErrLength):
		return errors.New(errors.KindOddLength)
	}
	return errors.Unspecified(err.Error())
}

func firstInvalid(s string) int {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return i
		}
	}
	return -1
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
