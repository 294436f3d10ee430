package kvstore

import (
	"bytes"
	"context"
	stderrors "errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/kbukum/faultline/errors"
)

// Collection is a named keyspace within a Store. Every operation fails
// with CollectionNotFound once the collection has been dropped.
type Collection struct {
	store  *Store
	name   []byte
	prefix []byte
}

// Name returns the collection name.
func (c *Collection) Name() []byte {
	return c.name
}

// Get returns the value stored under key, or KeyNotFound.
func (c *Collection) Get(ctx context.Context, key []byte) errors.Result[[]byte] {
	var value []byte
	err := c.store.view(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		item, err := txn.Get(c.key(key))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return KeyNotFound(key)
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return errors.Fail[[]byte](err)
	}
	return errors.Ok(value)
}

// Put stores value under key.
func (c *Collection) Put(ctx context.Context, key, value []byte) *errors.Error {
	return c.store.update(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		return txn.Set(c.key(key), value)
	})
}

// Delete removes key. Deleting a missing key is not a failure.
func (c *Collection) Delete(ctx context.Context, key []byte) *errors.Error {
	return c.store.update(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		return txn.Delete(c.key(key))
	})
}

// Update reads key and stores what fn returns in one transaction. fn sees
// found == false for a missing key; a nil result deletes the key. A
// concurrent write to key fails the update with Conflict.
func (c *Collection) Update(ctx context.Context, key []byte, fn func(old []byte, found bool) ([]byte, error)) *errors.Error {
	return c.store.update(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		var old []byte
		found := true
		item, err := txn.Get(c.key(key))
		switch {
		case stderrors.Is(err, badger.ErrKeyNotFound):
			found = false
		case err != nil:
			return err
		default:
			if old, err = item.ValueCopy(nil); err != nil {
				return err
			}
		}

		next, err := fn(old, found)
		if err != nil {
			return errors.Ensure(err)
		}
		if next == nil {
			return txn.Delete(c.key(key))
		}
		return txn.Set(c.key(key), next)
	})
}

// Scan calls fn for every key with the given prefix, in key order, until
// fn returns false. Keys and values are only valid during the call.
func (c *Collection) Scan(ctx context.Context, prefix []byte, fn func(key, value []byte) bool) *errors.Error {
	return c.store.view(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.key(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var keep bool
			err := item.Value(func(val []byte) error {
				keep = fn(bytes.TrimPrefix(item.Key(), c.prefix), val)
				return nil
			})
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}
		return nil
	})
}

// Len counts the keys in the collection.
func (c *Collection) Len(ctx context.Context) (int, *errors.Error) {
	n := 0
	err := c.store.view(ctx, func(txn *badger.Txn) error {
		if err := c.store.requireCollection(txn, c.name); err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.Prefix = c.prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (c *Collection) key(k []byte) []byte {
	out := make([]byte, 0, len(c.prefix)+len(k))
	out = append(out, c.prefix...)
	return append(out, k...)
}
