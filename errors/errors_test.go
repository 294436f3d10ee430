package errors

import (
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestKindTags(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("expected %s to parse back to %d, got %d (%v)", k, k, got, ok)
		}
	}
	if KindIO.String() != "IoErr" {
		t.Errorf("expected IoErr, got %s", KindIO)
	}
	if KindTransaction.String() != "Tx" {
		t.Errorf("expected Tx, got %s", KindTransaction)
	}
	if Kind(999).Valid() {
		t.Error("expected Kind(999) to be invalid")
	}
	if _, ok := ParseKind("Bogus"); ok {
		t.Error("expected Bogus not to parse")
	}
}

func TestDiscriminantsAreStable(t *testing.T) {
	tests := map[Kind]uint32{
		KindMissingEd25519PublicKey: 0,
		KindIO:                      11,
		KindInvalidHexCharacter:     14,
		KindStore:                   17,
		KindTLS:                     21,
		KindHTTP:                    23,
		KindJSONRPC:                 24,
		KindUnspecified:             26,
	}
	for k, want := range tests {
		if uint32(k) != want {
			t.Errorf("expected %s = %d, got %d", k, want, uint32(k))
		}
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	fx := fixtures()
	for i, a := range fx {
		if c := Compare(a, a); c != 0 {
			t.Errorf("expected %v to equal itself, got %d", a, c)
		}
		for j, b := range fx {
			if i == j {
				continue
			}
			ab, ba := Compare(a, b), Compare(b, a)
			if ab == 0 {
				t.Errorf("expected distinct fixtures %v and %v to differ", a, b)
			}
			if ab != -ba {
				t.Errorf("expected antisymmetry for %v and %v, got %d and %d", a, b, ab, ba)
			}
			if a.Kind() != b.Kind() && (ab < 0) != (a.Kind() < b.Kind()) {
				t.Errorf("expected kind order to dominate for %v and %v", a, b)
			}
		}
	}
}

func TestSortIsDeterministic(t *testing.T) {
	want := fixtures()
	Sort(want)
	for seed := uint64(1); seed <= 5; seed++ {
		got := fixtures()
		r := rand.New(rand.NewPCG(seed, seed))
		r.Shuffle(len(got), func(i, j int) { got[i], got[j] = got[j], got[i] })
		Sort(got)
		if !slices.EqualFunc(want, got, (*Error).Equal) {
			t.Fatalf("sort with seed %d produced a different order", seed)
		}
	}
	for i := 1; i < len(want); i++ {
		if Compare(want[i-1], want[i]) >= 0 {
			t.Errorf("expected strictly ascending order at %d: %v, %v", i, want[i-1], want[i])
		}
	}
}

func TestCompareDetails(t *testing.T) {
	tests := []struct {
		name string
		a, b *Error
	}{
		{"nil first", nil, New(KindMissingEd25519PublicKey)},
		{"kind order", New(KindMissingKeypair), New(KindMissingTxSignature)},
		{"hex char then index", InvalidHexCharacter("a", 9), InvalidHexCharacter("b", 0)},
		{"hex index", InvalidHexCharacter("a", 1), InvalidHexCharacter("a", 2)},
		{"json-rpc code first", JSONRPC(-1, "z"), JSONRPC(1, "a")},
		{"io code", FromIO(IO(IONotFound)), FromIO(IO(IOPermissionDenied))},
		{
			"expected prefix sorts first",
			FromTLS(TLSInappropriateMessageError([]ContentType{{Code: ContentAlert}}, ContentType{Code: ContentHeartbeat})),
			FromTLS(TLSInappropriateMessageError([]ContentType{{Code: ContentAlert}, {Code: ContentAlert}}, ContentType{Code: ContentAlert})),
		},
		{
			"unknown raw",
			FromTLS(TLSAlertError(AlertDescription{Code: AlertUnknown, Raw: 1})),
			FromTLS(TLSAlertError(AlertDescription{Code: AlertUnknown, Raw: 2})),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c := Compare(tt.a, tt.b); c >= 0 {
				t.Errorf("expected %v < %v, got %d", tt.a, tt.b, c)
			}
		})
	}
}

func TestDedup(t *testing.T) {
	in := []*Error{
		New(KindOddLength),
		FromIO(IO(IOTimedOut)),
		New(KindOddLength),
		FromIO(IO(IOTimedOut)),
		New(KindMissingKeypair),
	}
	got := Dedup(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique errors, got %d", len(got))
	}
	if got[0].Kind() != KindMissingKeypair || got[1].Kind() != KindIO || got[2].Kind() != KindOddLength {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestErrorRendering(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(KindMissingKeypair), "missing keypair"},
		{InvalidHexCharacter("g", 3), `invalid hex character "g" at index 3`},
		{FromIO(IO(IONotFound)), "i/o error: NotFound"},
		{JSONRPC(-32602, "invalid params"), "json-rpc error -32602: invalid params"},
		{FromHTTP(HTTPOtherError("eof")), "http error: Other(eof)"},
		{FromStore(Store(StoreCollectionNotFound, "accounts")), "store error: CollectionNotFound(accounts)"},
		{FromTLS(TLSAlertError(AlertDescription{Code: AlertUnknown, Raw: 200})), "tls error: AlertReceived(Unknown(200))"},
		{Unspecified("boom"), "unspecified error: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestIsAndAs(t *testing.T) {
	base := FromIO(IO(IOTimedOut))
	wrapped := fmt.Errorf("fetch: %w", base)

	if !stderrors.Is(wrapped, FromIO(IO(IOTimedOut))) {
		t.Error("expected errors.Is to match a structurally equal value")
	}
	if stderrors.Is(wrapped, FromIO(IO(IONotFound))) {
		t.Error("expected errors.Is not to match a different io code")
	}
	got, ok := As(wrapped)
	if !ok || got != base {
		t.Errorf("expected As to return the wrapped value, got %v", got)
	}
	if !HasKind(wrapped, KindIO) {
		t.Error("expected HasKind to find KindIO")
	}
	if HasKind(stderrors.New("plain"), KindIO) {
		t.Error("expected HasKind to be false for a plain error")
	}
}

func TestEnsure(t *testing.T) {
	if Ensure(nil) != nil {
		t.Error("expected nil for nil")
	}
	e := New(KindOddLength)
	if Ensure(fmt.Errorf("ctx: %w", e)) != e {
		t.Error("expected the chained *Error to be returned as-is")
	}
	got := Ensure(stderrors.New("plain"))
	if got.Kind() != KindUnspecified || got.Message() != "plain" {
		t.Errorf("expected Unspecified(plain), got %v", got)
	}
}

func TestTLSAccessorCopiesSlices(t *testing.T) {
	expected := []HandshakeType{{Code: HandshakeServerHello}}
	e := FromTLS(TLSInappropriateHandshakeError(expected, HandshakeType{Code: HandshakeFinished}))
	expected[0].Code = HandshakeFinished

	got, ok := e.TLS()
	if !ok {
		t.Fatal("expected a tls payload")
	}
	if got.ExpectedHandshake[0].Code != HandshakeServerHello {
		t.Error("expected the constructor to copy the caller's slice")
	}
	got.ExpectedHandshake[0].Code = HandshakeKeyUpdate
	again, _ := e.TLS()
	if again.ExpectedHandshake[0].Code != HandshakeServerHello {
		t.Error("expected the accessor to return a copy")
	}
}

func TestAccessorsOnWrongKind(t *testing.T) {
	e := New(KindOddLength)
	if _, ok := e.IO(); ok {
		t.Error("expected IO to report false")
	}
	if _, _, ok := e.HexChar(); ok {
		t.Error("expected HexChar to report false")
	}
	if _, _, ok := e.JSONRPC(); ok {
		t.Error("expected JSONRPC to report false")
	}
	if _, ok := e.TLS(); ok {
		t.Error("expected TLS to report false")
	}
}
