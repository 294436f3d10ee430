package errors

import (
	stderrors "errors"
	"testing"
)

func TestResult(t *testing.T) {
	ok := Ok(42)
	if !ok.IsOk() || ok.Value() != 42 || ok.Err() != nil {
		t.Errorf("expected Ok(42), got %+v", ok)
	}
	v, err := ok.Get()
	if v != 42 || err != nil {
		t.Errorf("expected (42, nil), got (%d, %v)", v, err)
	}

	failed := Fail[int](New(KindAccountNotFound))
	if failed.IsOk() {
		t.Error("expected failure")
	}
	v, err = failed.Get()
	if v != 0 || !HasKind(err, KindAccountNotFound) {
		t.Errorf("expected (0, AccountNotFound), got (%d, %v)", v, err)
	}
}

func TestFailNilIsStillFailure(t *testing.T) {
	r := Fail[string](nil)
	if r.IsOk() || r.Err().Kind() != KindUnspecified {
		t.Errorf("expected Unspecified failure, got %v", r.Err())
	}
	if _, failed := Failure(nil).Failed(); !failed {
		t.Error("expected Failure(nil) to report failure")
	}
}

func TestFrom(t *testing.T) {
	r := From("x", nil, nil)
	if !r.IsOk() || r.Value() != "x" {
		t.Errorf("expected Ok(x), got %+v", r)
	}

	r = From("", stderrors.New("plain"), nil)
	if r.Err().Kind() != KindUnspecified || r.Err().Message() != "plain" {
		t.Errorf("expected Unspecified(plain), got %v", r.Err())
	}

	r = From("", stderrors.New("plain"), func(error) *Error { return New(KindOddLength) })
	if r.Err().Kind() != KindOddLength {
		t.Errorf("expected translator result, got %v", r.Err())
	}
}

func TestOutcomeCompare(t *testing.T) {
	s := Success()
	f1 := Failure(New(KindMissingKeypair))
	f2 := Failure(New(KindOddLength))

	if s.Compare(s) != 0 || s.Compare(f1) >= 0 || f1.Compare(s) <= 0 {
		t.Error("expected Success to sort before failures")
	}
	if f1.Compare(f2) >= 0 {
		t.Error("expected failures to follow kind order")
	}
	if _, failed := s.Failed(); failed {
		t.Error("expected Success not to be failed")
	}
}
