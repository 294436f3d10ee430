package errors

// StoreCode enumerates embedded key-value store failures.
//
// I/O failures raised by the store are reported as KindIO, never here.
type StoreCode uint32

const (
	// StoreCollectionNotFound means the named collection no longer exists.
	StoreCollectionNotFound StoreCode = iota
	// StoreCorruption means corruption was detected at a location.
	StoreCorruption
	// StoreUnsupported means the store was used in an unsupported way.
	StoreUnsupported
	// StoreReportableBug means the store hit an internal bug.
	StoreReportableBug
	StoreKeyNotFound
	StoreConflict
	StoreClosed

	storeCodeCount
)

var storeCodeNames = [...]string{
	StoreCollectionNotFound: "CollectionNotFound",
	StoreCorruption:         "Corruption",
	StoreUnsupported:        "Unsupported",
	StoreReportableBug:      "ReportableBug",
	StoreKeyNotFound:        "KeyNotFound",
	StoreConflict:           "Conflict",
	StoreClosed:             "Closed",
}

func (c StoreCode) String() string { return enumName(storeCodeNames[:], uint32(c), "StoreCode") }

// Valid reports whether c is a declared code.
func (c StoreCode) Valid() bool { return c < storeCodeCount }

// StoreError is the embedded-store leaf category. Every code carries a
// descriptive string: a collection name, a corruption location, or a message.
type StoreError struct {
	Code    StoreCode
	Message string
}

// Store returns a StoreError.
func Store(code StoreCode, msg string) StoreError {
	return StoreError{Code: code, Message: msg}
}

func (e StoreError) String() string {
	return e.Code.String() + "(" + e.Message + ")"
}

// Compare orders store errors by code, then by message.
func (e StoreError) Compare(o StoreError) int {
	if c := cmpUint(uint32(e.Code), uint32(o.Code)); c != 0 {
		return c
	}
	return cmpString(e.Message, o.Message)
}

func parseStoreCode(tag string) (StoreCode, bool) {
	v, ok := enumIndex(storeCodeNames[:], tag)
	return StoreCode(v), ok
}
