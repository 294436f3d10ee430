package kvstore

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/ioerr"
	"github.com/kbukum/faultline/logger"
	"github.com/kbukum/faultline/observability"
)

const component = "kvstore"

// Key layout: collection markers live under metaPrefix, data under
// dataPrefix followed by the uvarint-prefixed collection name.
const (
	metaPrefix byte = 0x00
	dataPrefix byte = 0x01
)

// Options configures a Store.
type Options struct {
	// InMemory keeps all data in memory; the path is ignored.
	InMemory bool
	// ReadOnly opens an existing repository without write access.
	ReadOnly bool
	// SyncWrites flushes every write to disk before returning.
	SyncWrites bool
	// Metrics, when set, counts failures by kind.
	Metrics *observability.Metrics
}

// Store is a Badger database partitioned into named collections.
type Store struct {
	db      *badger.DB
	path    string
	metrics *observability.Metrics
}

// Create makes a new repository directory at path and opens a store in
// it. An existing path yields RepoAlreadyExists and a permission failure
// RepoCreatePermissionDenied.
func Create(path string, opts Options) (*Store, *errors.Error) {
	if err := os.Mkdir(path, 0o700); err != nil {
		switch {
		case stderrors.Is(err, fs.ErrExist):
			return nil, errors.New(errors.KindRepoAlreadyExists)
		case stderrors.Is(err, fs.ErrPermission):
			return nil, errors.New(errors.KindRepoCreatePermissionDenied)
		default:
			return nil, ioerr.Translate(err)
		}
	}
	return Open(path, opts)
}

// Open opens the repository at path.
func Open(path string, opts Options) (*Store, *errors.Error) {
	bopts := badger.DefaultOptions(path).
		WithInMemory(opts.InMemory).
		WithReadOnly(opts.ReadOnly).
		WithSyncWrites(opts.SyncWrites).
		WithLogger(newBadgerLogger(logger.Get(component)))
	if opts.InMemory {
		path = ""
		bopts = bopts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(bopts)
	if err != nil {
		ferr := Translate(err)
		opts.Metrics.RecordFault(context.Background(), ferr, component)
		return nil, ferr
	}
	return &Store{db: db, path: path, metrics: opts.Metrics}, nil
}

// Path returns the repository directory, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store. Further operations fail with Closed.
func (s *Store) Close() *errors.Error {
	if s.db.IsClosed() {
		return storeErr(errors.StoreClosed, "store already closed")
	}
	return Translate(s.db.Close())
}

// CreateCollection creates the named collection if it does not exist and
// returns it.
func (s *Store) CreateCollection(ctx context.Context, name []byte) (*Collection, *errors.Error) {
	err := s.update(ctx, func(txn *badger.Txn) error {
		return txn.Set(metaKey(name), nil)
	})
	if err != nil {
		return nil, err
	}
	return s.newCollection(name), nil
}

// Collection returns an existing collection, or CollectionNotFound.
func (s *Store) Collection(ctx context.Context, name []byte) (*Collection, *errors.Error) {
	err := s.view(ctx, func(txn *badger.Txn) error {
		return s.requireCollection(txn, name)
	})
	if err != nil {
		return nil, err
	}
	return s.newCollection(name), nil
}

// DropCollection deletes a collection and all of its keys.
func (s *Store) DropCollection(ctx context.Context, name []byte) *errors.Error {
	err := s.update(ctx, func(txn *badger.Txn) error {
		if err := s.requireCollection(txn, name); err != nil {
			return err
		}
		return txn.Delete(metaKey(name))
	})
	if err != nil {
		return err
	}
	return s.fail(ctx, Translate(s.db.DropPrefix(dataKeyPrefix(name))))
}

// Collections lists collection names in key order.
func (s *Store) Collections(ctx context.Context) ([][]byte, *errors.Error) {
	var names [][]byte
	err := s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{metaPrefix}
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, it.Item().KeyCopy(nil)[1:])
		}
		return nil
	})
	return names, err
}

// Stats describes a store.
type Stats struct {
	Path        string         `json:"path" yaml:"path"`
	InMemory    bool           `json:"in_memory" yaml:"in_memory"`
	LSMBytes    int64          `json:"lsm_bytes" yaml:"lsm_bytes"`
	VlogBytes   int64          `json:"vlog_bytes" yaml:"vlog_bytes"`
	Collections map[string]int `json:"collections" yaml:"collections"`
}

// Stats counts keys per collection. Collection names that are not valid
// UTF-8 are reported hex-encoded.
func (s *Store) Stats(ctx context.Context) (Stats, *errors.Error) {
	stats := Stats{Path: s.path, InMemory: s.db.Opts().InMemory, Collections: map[string]int{}}
	names, err := s.Collections(ctx)
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		n, err := s.newCollection(name).Len(ctx)
		if err != nil {
			return stats, err
		}
		stats.Collections[displayKey(name)] = n
	}
	stats.LSMBytes, stats.VlogBytes = s.db.Size()
	return stats, nil
}

func (s *Store) newCollection(name []byte) *Collection {
	return &Collection{store: s, name: append([]byte(nil), name...), prefix: dataKeyPrefix(name)}
}

func (s *Store) requireCollection(txn *badger.Txn, name []byte) error {
	_, err := txn.Get(metaKey(name))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return CollectionNotFound(name)
	}
	return err
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) *errors.Error {
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, ioerr.Translate(err))
	}
	return s.fail(ctx, Translate(s.db.View(fn)))
}

func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) *errors.Error {
	if err := ctx.Err(); err != nil {
		return s.fail(ctx, ioerr.Translate(err))
	}
	return s.fail(ctx, Translate(s.db.Update(fn)))
}

// fail records err, if any, and returns it.
func (s *Store) fail(ctx context.Context, err *errors.Error) *errors.Error {
	if err != nil {
		s.metrics.RecordFault(ctx, err, component)
	}
	return err
}

func metaKey(name []byte) []byte {
	return append([]byte{metaPrefix}, name...)
}

func dataKeyPrefix(name []byte) []byte {
	p := []byte{dataPrefix}
	p = binary.AppendUvarint(p, uint64(len(name)))
	return append(p, name...)
}

// displayKey renders b as text when printable UTF-8, hex otherwise.
func displayKey(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return fmt.Sprintf("0x%s", hex.EncodeToString(b))
}
