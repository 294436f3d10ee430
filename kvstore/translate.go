package kvstore

import (
	stderrors "errors"
	"strings"
	"unicode/utf8"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/y"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
)

var sentinels = []struct {
	err  error
	code errors.StoreCode
}{
	{badger.ErrKeyNotFound, errors.StoreKeyNotFound},
	{badger.ErrConflict, errors.StoreConflict},
	{badger.ErrDBClosed, errors.StoreClosed},
	{badger.ErrBlockedWrites, errors.StoreClosed},
	{y.ErrChecksumMismatch, errors.StoreCorruption},
	{badger.ErrTruncateNeeded, errors.StoreCorruption},
	{badger.ErrInvalidDump, errors.StoreCorruption},
	{badger.ErrReadOnlyTxn, errors.StoreUnsupported},
	{badger.ErrDiscardedTxn, errors.StoreUnsupported},
	{badger.ErrEmptyKey, errors.StoreUnsupported},
	{badger.ErrInvalidKey, errors.StoreUnsupported},
	{badger.ErrBannedKey, errors.StoreUnsupported},
	{badger.ErrTxnTooBig, errors.StoreUnsupported},
	{badger.ErrManagedTxn, errors.StoreUnsupported},
	{badger.ErrNamespaceMode, errors.StoreUnsupported},
	{badger.ErrInvalidRequest, errors.StoreUnsupported},
	{badger.ErrValueLogSize, errors.StoreUnsupported},
	{badger.ErrThresholdZero, errors.StoreUnsupported},
	{badger.ErrNoRewrite, errors.StoreUnsupported},
	{badger.ErrRejected, errors.StoreUnsupported},
	{badger.ErrGCInMemoryMode, errors.StoreUnsupported},
	{badger.ErrWindowsNotSupported, errors.StoreUnsupported},
	{badger.ErrZeroBandwidth, errors.StoreUnsupported},
	{badger.ErrNilCallback, errors.StoreUnsupported},
	{badger.ErrEncryptionKeyMismatch, errors.StoreUnsupported},
	{badger.ErrInvalidEncryptionKey, errors.StoreUnsupported},
	{badger.ErrInvalidDataKeyID, errors.StoreCorruption},
}

// Badger flattens some failures into strings before returning them.
var messageRules = []struct {
	substr string
	apply  func(msg string) *errors.Error
}{
	{"Cannot acquire directory lock", func(string) *errors.Error {
		return errors.FromIO(errors.IO(errors.IOWouldBlock))
	}},
	{"checksum mismatch", func(msg string) *errors.Error {
		return storeErr(errors.StoreCorruption, msg)
	}},
	{"Cannot open manifest", func(msg string) *errors.Error {
		return storeErr(errors.StoreCorruption, msg)
	}},
}

// Translate converts a Badger or store failure into a unified error. nil
// yields nil, and an *errors.Error already in the chain is returned as-is.
func Translate(err error) *errors.Error {
	if err == nil {
		return nil
	}
	if e, ok := errors.As(err); ok {
		return e
	}
	for _, s := range sentinels {
		if stderrors.Is(err, s.err) {
			return storeErr(s.code, err.Error())
		}
	}
	msg := err.Error()
	for _, r := range messageRules {
		if strings.Contains(msg, r.substr) {
			return r.apply(msg)
		}
	}
	if _, ok := ioerr.Code(err); ok {
		return ioerr.Translate(err)
	}
	return storeErr(errors.StoreReportableBug, msg)
}

// CollectionNotFound reports a missing collection. The name is carried as
// text when it is valid UTF-8.
func CollectionNotFound(name []byte) *errors.Error {
	if !utf8.Valid(name) {
		return errors.New(errors.KindInvalidByteToUTF8StringConversion)
	}
	return storeErr(errors.StoreCollectionNotFound, string(name))
}

// KeyNotFound reports a missing key, rendered as text or hex.
func KeyNotFound(key []byte) *errors.Error {
	return storeErr(errors.StoreKeyNotFound, displayKey(key))
}

func storeErr(code errors.StoreCode, msg string) *errors.Error {
	return errors.FromStore(errors.Store(code, msg))
}
