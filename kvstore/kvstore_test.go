package kvstore

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/y"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/observability"
)

func newMemStore(t *testing.T, opts Options) *Store {
	t.Helper()
	opts.InMemory = true
	s, err := Open("", opts)
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newCollection(t *testing.T, s *Store, name string) *Collection {
	t.Helper()
	c, err := s.CreateCollection(context.Background(), []byte(name))
	if err != nil {
		t.Fatalf("create collection %s: %v", name, err)
	}
	return c
}

func expectStore(t *testing.T, err *errors.Error, code errors.StoreCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected store error %s, got nil", code)
	}
	se, ok := err.Store()
	if !ok {
		t.Fatalf("expected store error, got %v", err)
	}
	if se.Code != code {
		t.Errorf("expected code %s, got %s", code, se.Code)
	}
	if msg != "" && se.Message != msg {
		t.Errorf("expected message %q, got %q", msg, se.Message)
	}
}

func TestCreate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "repo")

	s, err := Create(dir, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Path() != dir {
		t.Errorf("expected path %s, got %s", dir, s.Path())
	}
	c := newCollection(t, s, "accounts")
	if err := c.Put(context.Background(), []byte("k"), []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := Create(dir, Options{}); err == nil || err.Kind() != errors.KindRepoAlreadyExists {
		t.Errorf("expected RepoAlreadyExists, got %v", err)
	}

	s, err = Open(dir, Options{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	c, err = s.Collection(context.Background(), []byte("accounts"))
	if err != nil {
		t.Fatalf("collection after reopen: %v", err)
	}
	if v := c.Get(context.Background(), []byte("k")); !v.IsOk() || string(v.Value()) != "v" {
		t.Errorf("expected persisted value, got %v", v.Err())
	}
}

func TestCreate_Failures(t *testing.T) {
	if _, err := Create(t.TempDir(), Options{}); err == nil || err.Kind() != errors.KindRepoAlreadyExists {
		t.Errorf("expected RepoAlreadyExists for an existing directory, got %v", err)
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "parent")
	_, err := Create(missing, Options{})
	if io, ok := err.IO(); !ok || io.Code != errors.IONotFound {
		t.Errorf("expected IO NotFound, got %v", err)
	}
}

func TestCreate_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	parent := t.TempDir()
	if err := os.Chmod(parent, 0o500); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(parent, 0o700)

	_, err := Create(filepath.Join(parent, "repo"), Options{})
	if err == nil || err.Kind() != errors.KindRepoCreatePermissionDenied {
		t.Errorf("expected RepoCreatePermissionDenied, got %v", err)
	}
}

func TestCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "accounts")

	if err := c.Put(ctx, []byte("alice"), []byte("10")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got := c.Get(ctx, []byte("alice"))
	if !got.IsOk() || string(got.Value()) != "10" {
		t.Errorf("expected 10, got %q (%v)", got.Value(), got.Err())
	}

	if err := c.Delete(ctx, []byte("alice")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectStore(t, c.Get(ctx, []byte("alice")).Err(), errors.StoreKeyNotFound, "alice")
	expectStore(t, c.Get(ctx, []byte{0xff, 0x00}).Err(), errors.StoreKeyNotFound, "0xff00")

	if err := c.Delete(ctx, []byte("never")); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestCollections_AreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, Options{})
	a := newCollection(t, s, "a")
	ab := newCollection(t, s, "ab")

	_ = a.Put(ctx, []byte("bc"), []byte("1"))
	_ = ab.Put(ctx, []byte("c"), []byte("2"))

	if n, _ := a.Len(ctx); n != 1 {
		t.Errorf("expected 1 key in a, got %d", n)
	}
	if v := ab.Get(ctx, []byte("c")); string(v.Value()) != "2" {
		t.Errorf("expected 2, got %q", v.Value())
	}
	if v := a.Get(ctx, []byte("c")); v.IsOk() {
		t.Error("expected a not to see ab's key")
	}
}

func TestCollectionNotFound(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, Options{})

	_, err := s.Collection(ctx, []byte("missing"))
	expectStore(t, err, errors.StoreCollectionNotFound, "missing")

	_, err = s.Collection(ctx, []byte{0xc3, 0x28})
	if err == nil || err.Kind() != errors.KindInvalidByteToUTF8StringConversion {
		t.Errorf("expected InvalidByteToUTF8StringConversion, got %v", err)
	}
}

func TestDropCollection(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, Options{})
	c := newCollection(t, s, "tmp")
	_ = c.Put(ctx, []byte("k"), []byte("v"))

	if err := s.DropCollection(ctx, []byte("tmp")); err != nil {
		t.Fatalf("drop: %v", err)
	}
	expectStore(t, c.Put(ctx, []byte("k"), []byte("v")), errors.StoreCollectionNotFound, "tmp")
	expectStore(t, c.Get(ctx, []byte("k")).Err(), errors.StoreCollectionNotFound, "tmp")
	expectStore(t, s.DropCollection(ctx, []byte("tmp")), errors.StoreCollectionNotFound, "tmp")

	c = newCollection(t, s, "tmp")
	if n, err := c.Len(ctx); err != nil || n != 0 {
		t.Errorf("expected an empty recreated collection, got %d (%v)", n, err)
	}
}

func TestCollections(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, Options{})
	for _, name := range []string{"b", "a", "c"} {
		newCollection(t, s, name)
	}

	names, err := s.Collections(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	if len(names) != len(want) {
		t.Fatalf("expected %d collections, got %d", len(want), len(names))
	}
	for i := range want {
		if !bytes.Equal(names[i], want[i]) {
			t.Errorf("expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "counters")
	incr := func(old []byte, found bool) ([]byte, error) {
		if !found {
			return []byte("1"), nil
		}
		return append(old, '+'), nil
	}

	for i := 0; i < 3; i++ {
		if err := c.Update(ctx, []byte("n"), incr); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if v := c.Get(ctx, []byte("n")); string(v.Value()) != "1++" {
		t.Errorf("expected 1++, got %q", v.Value())
	}

	err := c.Update(ctx, []byte("n"), func([]byte, bool) ([]byte, error) { return nil, nil })
	if err != nil {
		t.Fatalf("delete via update: %v", err)
	}
	expectStore(t, c.Get(ctx, []byte("n")).Err(), errors.StoreKeyNotFound, "n")
}

func TestUpdate_CallbackError(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "x")

	err := c.Update(ctx, []byte("k"), func([]byte, bool) ([]byte, error) {
		return nil, errors.Serialization("bad record")
	})
	if err == nil || err.Kind() != errors.KindSerialization {
		t.Errorf("expected the callback's error, got %v", err)
	}

	err = c.Update(ctx, []byte("k"), func([]byte, bool) ([]byte, error) {
		return nil, fmt.Errorf("plain")
	})
	if err == nil || err.Kind() != errors.KindUnspecified {
		t.Errorf("expected Unspecified for a plain error, got %v", err)
	}
}

func TestUpdate_Conflict(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "x")
	_ = c.Put(ctx, []byte("k"), []byte("0"))

	err := c.Update(ctx, []byte("k"), func(old []byte, _ bool) ([]byte, error) {
		if err := c.Put(ctx, []byte("k"), []byte("other")); err != nil {
			t.Fatalf("concurrent put: %v", err)
		}
		return []byte("mine"), nil
	})
	expectStore(t, err, errors.StoreConflict, "")
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "keys")
	for _, k := range []string{"tx/1", "tx/2", "tx/3", "acct/1"} {
		_ = c.Put(ctx, []byte(k), []byte("v-"+k))
	}

	var seen []string
	err := c.Scan(ctx, []byte("tx/"), func(k, v []byte) bool {
		seen = append(seen, string(k))
		if string(v) != "v-"+string(k) {
			t.Errorf("unexpected value %q for %q", v, k)
		}
		return len(seen) < 2
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(seen) != 2 || seen[0] != "tx/1" || seen[1] != "tx/2" {
		t.Errorf("expected [tx/1 tx/2], got %v", seen)
	}
}

func TestClosedStore(t *testing.T) {
	s, err := Open("", Options{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	c := newCollection(t, s, "x")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	expectStore(t, c.Get(context.Background(), []byte("k")).Err(), errors.StoreClosed, "")
	expectStore(t, s.Close(), errors.StoreClosed, "")
}

func TestContextCanceled(t *testing.T) {
	c := newCollection(t, newMemStore(t, Options{}), "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Put(ctx, []byte("k"), []byte("v"))
	if io, ok := err.IO(); !ok || io.Code != errors.IOInterrupted {
		t.Errorf("expected IO Interrupted, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newMemStore(t, Options{})
	c := newCollection(t, s, "accounts")
	newCollection(t, s, string([]byte{0xff}))
	_ = c.Put(ctx, []byte("a"), []byte("1"))
	_ = c.Put(ctx, []byte("b"), []byte("2"))

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !stats.InMemory || stats.Path != "" {
		t.Errorf("expected an in-memory store without path, got %+v", stats)
	}
	if stats.Collections["accounts"] != 2 {
		t.Errorf("expected 2 keys in accounts, got %d", stats.Collections["accounts"])
	}
	if n, ok := stats.Collections["0xff"]; !ok || n != 0 {
		t.Errorf("expected hex-named empty collection, got %v", stats.Collections)
	}
}

func TestMetricsRecordFaults(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	m, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	s := newMemStore(t, Options{Metrics: m})
	_, _ = s.Collection(context.Background(), []byte("missing"))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			if sum, ok := metric.Data.(metricdata.Sum[int64]); ok && metric.Name == "faults_total" {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	if total != 1 {
		t.Errorf("expected 1 recorded fault, got %d", total)
	}
}

func TestConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	c := newCollection(t, newMemStore(t, Options{}), "x")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := c.Put(ctx, []byte(fmt.Sprintf("k%02d", i)), []byte("v")); err != nil {
				t.Errorf("put %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if n, _ := c.Len(ctx); n != 16 {
		t.Errorf("expected 16 keys, got %d", n)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.StoreCode
	}{
		{"key not found", badger.ErrKeyNotFound, errors.StoreKeyNotFound},
		{"wrapped conflict", fmt.Errorf("commit: %w", badger.ErrConflict), errors.StoreConflict},
		{"closed", badger.ErrDBClosed, errors.StoreClosed},
		{"blocked writes", badger.ErrBlockedWrites, errors.StoreClosed},
		{"checksum", y.ErrChecksumMismatch, errors.StoreCorruption},
		{"flattened checksum", fmt.Errorf("table 7: checksum mismatch"), errors.StoreCorruption},
		{"truncate", badger.ErrTruncateNeeded, errors.StoreCorruption},
		{"read-only txn", badger.ErrReadOnlyTxn, errors.StoreUnsupported},
		{"empty key", badger.ErrEmptyKey, errors.StoreUnsupported},
		{"gc in memory", badger.ErrGCInMemoryMode, errors.StoreUnsupported},
		{"unknown", fmt.Errorf("something odd"), errors.StoreReportableBug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.err)
			expectStore(t, got, tt.code, tt.err.Error())
		})
	}
}

func TestTranslate_NonStore(t *testing.T) {
	if Translate(nil) != nil {
		t.Error("expected nil for nil")
	}

	existing := errors.New(errors.KindOddLength)
	if Translate(fmt.Errorf("wrap: %w", existing)) != existing {
		t.Error("expected an existing unified error to pass through")
	}

	got := Translate(fmt.Errorf("open: %w", fs.ErrPermission))
	if io, ok := got.IO(); !ok || io.Code != errors.IOPermissionDenied {
		t.Errorf("expected IO PermissionDenied, got %v", got)
	}

	got = Translate(fmt.Errorf(`Cannot acquire directory lock on "/x". Another process is using this Badger database. error: resource temporarily unavailable`))
	if io, ok := got.IO(); !ok || io.Code != errors.IOWouldBlock {
		t.Errorf("expected IO WouldBlock, got %v", got)
	}
}

func TestCollectionNotFoundConstructor(t *testing.T) {
	expectStore(t, CollectionNotFound([]byte("ok")), errors.StoreCollectionNotFound, "ok")
	if err := CollectionNotFound([]byte{0x80}); err.Kind() != errors.KindInvalidByteToUTF8StringConversion {
		t.Errorf("expected InvalidByteToUTF8StringConversion, got %s", err.Kind())
	}
}
