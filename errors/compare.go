package errors

import (
	"cmp"
	"fmt"
	"slices"
)

// Compare orders two errors: first by kind in declaration order, then by
// payload fields in declaration order. It is a strict total order over
// well-formed values, suitable for sorting fixtures and deduplicating logs.
//
// A nil *Error sorts before every non-nil value.
func Compare(a, b *Error) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmpUint(uint32(a.kind), uint32(b.kind)); c != 0 {
		return c
	}
	switch a.kind {
	case KindInvalidHexCharacter:
		if c := cmpString(a.char, b.char); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	case KindIO:
		return a.io.Compare(b.io)
	case KindStore:
		return a.store.Compare(b.store)
	case KindTLS:
		return a.tls.Compare(b.tls)
	case KindHTTP:
		return a.http.Compare(b.http)
	case KindJSONRPC:
		if c := cmp.Compare(a.code, b.code); c != 0 {
			return c
		}
		return cmpString(a.message, b.message)
	}
	if a.kind.carriesMessage() {
		return cmpString(a.message, b.message)
	}
	return 0
}

// Sort orders errs in place by Compare.
func Sort(errs []*Error) {
	slices.SortFunc(errs, Compare)
}

// Dedup sorts errs and removes structurally equal neighbours.
func Dedup(errs []*Error) []*Error {
	Sort(errs)
	return slices.CompactFunc(errs, func(a, b *Error) bool { return Compare(a, b) == 0 })
}

func cmpUint(a, b uint32) int { return cmp.Compare(a, b) }

func cmpString(a, b string) int { return cmp.Compare(a, b) }

// cmpCoded compares enum values whose last variant carries a raw byte.
func cmpCoded(a, b uint32, unknown bool, rawA, rawB uint8) int {
	if c := cmp.Compare(a, b); c != 0 {
		return c
	}
	if unknown {
		return cmp.Compare(rawA, rawB)
	}
	return 0
}

// compareSlices compares lexicographically; a proper prefix sorts first.
func compareSlices[T any](a, b []T, f func(T, T) int) int {
	return slices.CompareFunc(a, b, f)
}

func enumName(names []string, v uint32, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

func enumIndex(names []string, tag string) (uint32, bool) {
	for i, n := range names {
		if n == tag {
			return uint32(i), true
		}
	}
	return 0, false
}
